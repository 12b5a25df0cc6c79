package suggest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericPrompts = []*regexp.Regexp{
		regexp.MustCompile(`(?i)how many`),
		regexp.MustCompile(`(?i)what is the value`),
		regexp.MustCompile(`(?i)calculate`),
		regexp.MustCompile(`(?i)find the number`),
	}
	integerPattern = regexp.MustCompile(`\d+`)
	modulusPattern = regexp.MustCompile(`(?i)mod[- ]?(\d+)`)
)

const numericConfidence = 0.85

// NumericHeuristic answers numeric prompts it can compute. Today that is only
// the flip-flop count of a MOD-N counter; other numeric prompts yield nothing.
type NumericHeuristic struct{}

func (NumericHeuristic) Name() string { return "numeric" }

func (NumericHeuristic) Evaluate(q Question) Suggestion {
	if !matchesAny(numericPrompts, q.Text) {
		return Suggestion{Reasoning: "Not a numeric question"}
	}

	lower := strings.ToLower(q.Text)
	if strings.Contains(lower, "flip-flop") && strings.Contains(lower, "mod") {
		if s, ok := flipFlopCount(q); ok {
			return s
		}
	}
	return Suggestion{Reasoning: "No numeric pattern match"}
}

func flipFlopCount(q Question) (Suggestion, bool) {
	m := modulusPattern.FindStringSubmatch(q.Text)
	if m == nil {
		return Suggestion{}, false
	}
	modulus, err := strconv.Atoi(m[1])
	if err != nil || modulus < 1 {
		return Suggestion{}, false
	}
	required := int(math.Ceil(math.Log2(float64(modulus))))

	opt, ok := firstMatch(q.Options, func(text string) bool {
		for _, n := range optionIntegers(text) {
			if n == required {
				return true
			}
		}
		return false
	})
	if !ok {
		return Suggestion{}, false
	}
	return Suggestion{
		Option:     opt,
		Confidence: numericConfidence,
		Reasoning:  fmt.Sprintf("MOD-%d requires %d flip-flops (2^%d = %d)", modulus, required, required, 1<<required),
	}, true
}

// optionIntegers extracts every run of digits in text. Runs too long for an
// int are skipped.
func optionIntegers(text string) []int {
	var out []int
	for _, s := range integerPattern.FindAllString(text, -1) {
		if n, err := strconv.Atoi(s); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
