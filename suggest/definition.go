package suggest

import (
	"fmt"
	"regexp"
	"strings"
)

// definitionPrompts recognise "what is X?", "define X", "X is defined as" and
// "X refers to". term is the capture group holding X.
var definitionPrompts = []struct {
	re   *regexp.Regexp
	term int
}{
	{regexp.MustCompile(`(?i)what is (the )?(.+)\?`), 2},
	{regexp.MustCompile(`(?i)define (.+)`), 1},
	{regexp.MustCompile(`(?i)(.+) is defined as`), 1},
	{regexp.MustCompile(`(?i)(.+) refers to`), 1},
}

// definitions maps a domain term to the shape of a correct definition.
// Checked in order; the first term contained in X whose pattern hits an option wins.
var definitions = []struct {
	term   string
	answer *regexp.Regexp
}{
	{"laplace transform", regexp.MustCompile(`(?i)1/s|transform of u\(t\)`)},
	{"thevenin", regexp.MustCompile(`(?i)linear|equivalent|voltage source`)},
	{"norton", regexp.MustCompile(`(?i)current source|parallel`)},
	{"nyquist", regexp.MustCompile(`(?i)twice|sampling|frequency`)},
	{"fourier", regexp.MustCompile(`(?i)frequency domain|spectrum`)},
}

const definitionConfidence = 0.75

// DefinitionHeuristic matches definition-style prompts against a small
// dictionary of known terms.
type DefinitionHeuristic struct{}

func (DefinitionHeuristic) Name() string { return "definition" }

func (DefinitionHeuristic) Evaluate(q Question) Suggestion {
	for _, p := range definitionPrompts {
		m := p.re.FindStringSubmatch(q.Text)
		if m == nil {
			continue
		}
		term := strings.ToLower(strings.TrimSpace(m[p.term]))
		for _, d := range definitions {
			if !strings.Contains(term, d.term) {
				continue
			}
			if opt, ok := firstMatch(q.Options, d.answer.MatchString); ok {
				return Suggestion{
					Option:     opt,
					Confidence: definitionConfidence,
					Reasoning:  fmt.Sprintf("Definition match for %q", d.term),
				}
			}
		}
	}
	return Suggestion{Reasoning: "No definition match"}
}
