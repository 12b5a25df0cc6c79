package suggest

// Suggestion is one heuristic's advisory answer. An empty Option means
// "no opinion" and is omitted when encoded; Confidence 0 means nothing matched.
type Suggestion struct {
	Option     Letter  `json:"option,omitempty"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// HasOption reports whether the suggestion names a concrete option.
func (s Suggestion) HasOption() bool {
	return s.Option != ""
}

// NoMatch is returned by Aggregate when no heuristic reports any confidence.
var NoMatch = Suggestion{Reasoning: "No strong match found"}

// Heuristic is a pure scoring rule over a normalized question.
type Heuristic interface {
	Name() string
	Evaluate(q Question) Suggestion
}

// DefaultBattery returns the heuristics in evaluation order. The order is the
// aggregate tie-break: on equal confidence the earlier heuristic wins.
func DefaultBattery() []Heuristic {
	return []Heuristic{
		DefinitionHeuristic{},
		NumericHeuristic{},
		FormulaHeuristic{},
		KeywordDensityHeuristic{},
		NegationHeuristic{},
	}
}

// firstMatch scans options A..D and returns the first letter whose text
// satisfies match.
func firstMatch(opts Options, match func(text string) bool) (Letter, bool) {
	for i, l := range Letters {
		if match(opts[i]) {
			return l, true
		}
	}
	return "", false
}
