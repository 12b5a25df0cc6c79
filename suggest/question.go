// Package suggest is the heuristic correct-option suggester used by the
// question import tooling. It only ever produces advisory suggestions; a
// human reviewer commits the real correctOption.
package suggest

import "gate-tracker-server/models"

// Letter identifies one of the four option slots.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters lists the option slots in scan order.
var Letters = [4]Letter{LetterA, LetterB, LetterC, LetterD}

// Options maps each letter to its option text, in A..D order.
type Options [4]string

// Text returns the option text for l, or "" for an unknown letter.
func (o Options) Text(l Letter) string {
	switch l {
	case LetterA:
		return o[0]
	case LetterB:
		return o[1]
	case LetterC:
		return o[2]
	case LetterD:
		return o[3]
	}
	return ""
}

// Question is the normalized view every heuristic receives.
type Question struct {
	Text    string
	Options Options
}

// Normalize exposes an import record uniformly to the heuristics.
// Missing fields are already "" in Go, so this never fails.
func Normalize(q models.ImportQuestion) Question {
	return Question{
		Text:    q.QuestionText,
		Options: Options{q.OptionA, q.OptionB, q.OptionC, q.OptionD},
	}
}
