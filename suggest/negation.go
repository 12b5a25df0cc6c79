package suggest

import "regexp"

var negationPattern = regexp.MustCompile(`(?i)\b(not|except|false|incorrect|never)\b`)

const negationConfidence = 0.3

// NegationHeuristic never proposes an option. It flags NOT/EXCEPT style
// prompts with a small confidence so they are routed to manual review.
// Its fixed 0.3 outranks any positive match scoring below 0.3, so the
// aggregate can end up with no option even when a weaker candidate existed.
type NegationHeuristic struct{}

func (NegationHeuristic) Name() string { return "negation" }

func (NegationHeuristic) Evaluate(q Question) Suggestion {
	if negationPattern.MatchString(q.Text) {
		return Suggestion{
			Confidence: negationConfidence,
			Reasoning:  "Negation question detected - requires manual review",
		}
	}
	return Suggestion{Reasoning: "No negation pattern"}
}
