package suggest

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

const (
	minKeywordLength  = 4
	minKeywordMatches = 2
	keywordBase       = 0.5
	keywordStep       = 0.1
	keywordCap        = 0.7
)

// KeywordDensityHeuristic picks the option sharing the most prompt keywords.
type KeywordDensityHeuristic struct{}

func (KeywordDensityHeuristic) Name() string { return "keyword-density" }

func (KeywordDensityHeuristic) Evaluate(q Question) Suggestion {
	keywords := extractKeywords(q.Text)

	var scores [4]int
	best := 0
	for i, text := range q.Options {
		lower := strings.ToLower(text)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[i]++
			}
		}
		if scores[i] > best {
			best = scores[i]
		}
	}

	if best < minKeywordMatches {
		return Suggestion{Reasoning: "Low keyword density"}
	}
	var opt Letter
	for i, l := range Letters {
		if scores[i] == best {
			opt = l
			break
		}
	}
	return Suggestion{
		Option:     opt,
		Confidence: math.Min(keywordBase+float64(best)*keywordStep, keywordCap),
		Reasoning:  fmt.Sprintf("Keyword density: %d matches", best),
	}
}

// extractKeywords lowercases text, drops everything but ASCII word characters
// and whitespace, and keeps words of at least minKeywordLength. Repeated words
// are kept and count once per occurrence.
func extractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordChar(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))

	var keywords []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) >= minKeywordLength {
			keywords = append(keywords, w)
		}
	}
	return keywords
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
