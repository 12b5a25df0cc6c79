package suggest

import (
	"fmt"
	"regexp"
)

type formulaRule struct {
	source     string
	question   *regexp.Regexp
	answer     *regexp.Regexp
	confidence float64
}

func newFormulaRule(question, answer string, confidence float64) formulaRule {
	return formulaRule{
		source:     question,
		question:   regexp.MustCompile("(?i)" + question),
		answer:     regexp.MustCompile("(?i)" + answer),
		confidence: confidence,
	}
}

// formulas is evaluated in order; the first rule with a matching option wins.
var formulas = []formulaRule{
	newFormulaRule(`laplace.*u\(t\)`, `1/s`, 0.8),
	newFormulaRule(`sampling.*theorem`, `twice|2.*highest`, 0.75),
	newFormulaRule(`ohm.*law`, `V.*I.*R|voltage.*current.*resistance`, 0.7),
}

// FormulaHeuristic recognises prompts about well-known formulas and looks for
// the option stating that formula.
type FormulaHeuristic struct{}

func (FormulaHeuristic) Name() string { return "formula" }

func (FormulaHeuristic) Evaluate(q Question) Suggestion {
	for _, f := range formulas {
		if !f.question.MatchString(q.Text) {
			continue
		}
		if opt, ok := firstMatch(q.Options, f.answer.MatchString); ok {
			return Suggestion{
				Option:     opt,
				Confidence: f.confidence,
				Reasoning:  fmt.Sprintf("Formula match for pattern: %s", f.source),
			}
		}
	}
	return Suggestion{Reasoning: "No formula match"}
}
