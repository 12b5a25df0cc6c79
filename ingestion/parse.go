package ingestion

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"gate-tracker-server/models"
)

const minQuestionTextLength = 10

var (
	// Question markers at line start: "1.", "Q.1", "Q1", "Question 1".
	blockSplitRe = regexp.MustCompile(`(?im)(?:^|\n)(?:Q\.?\s*\d+|Question\s+\d+|\d+\.)\s*`)
	optionRe     = regexp.MustCompile(`\(([A-D])\)`)
)

// Reasons a block is skipped.
var (
	ErrNoOptions     = errors.New("no options found")
	ErrTextTooShort  = errors.New("question text too short")
	ErrTooFewOptions = errors.New("less than 4 options found")
)

// ParseResult holds the questions recovered from a text dump and a warning
// for every block that was skipped.
type ParseResult struct {
	Questions []models.ImportQuestion
	Warnings  []string
}

// ParseQuestions splits text into question blocks and parses each one.
// Block indexes are 1-based and count every non-blank block, skipped or not.
func ParseQuestions(text string) ParseResult {
	res := ParseResult{Questions: []models.ImportQuestion{}}
	for i, block := range SplitBlocks(text) {
		q, err := ParseBlock(block, i+1)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Question %d: %v, skipping", i+1, err))
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res
}

// SplitBlocks splits text on question markers and drops blank pieces.
func SplitBlocks(text string) []string {
	var blocks []string
	for _, part := range blockSplitRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			blocks = append(blocks, part)
		}
	}
	return blocks
}

// ParseBlock turns one block into a question. The question text is
// everything before the first option marker.
func ParseBlock(block string, index int) (models.ImportQuestion, error) {
	first := optionRe.FindStringIndex(block)
	if first == nil {
		return models.ImportQuestion{}, ErrNoOptions
	}
	text := strings.TrimSpace(block[:first[0]])
	if utf8.RuneCountInString(text) < minQuestionTextLength {
		return models.ImportQuestion{}, ErrTextTooShort
	}
	opts := ExtractOptions(block)
	if len(opts) < 4 {
		return models.ImportQuestion{}, ErrTooFewOptions
	}
	return models.ImportQuestion{
		QuestionText: text,
		OptionA:      opts["A"],
		OptionB:      opts["B"],
		OptionC:      opts["C"],
		OptionD:      opts["D"],
		Metadata: &models.BlockMetadata{
			Index:     index,
			RawLength: utf8.RuneCountInString(block),
		},
	}, nil
}

// ExtractOptions returns the text following each "(X)" marker up to the next
// marker or the end of the block. A segment that is empty or contains "(" is
// not an option. A repeated letter keeps its last value.
func ExtractOptions(block string) map[string]string {
	opts := make(map[string]string)
	markers := optionRe.FindAllStringSubmatchIndex(block, -1)
	for i, m := range markers {
		end := len(block)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		segment := block[m[1]:end]
		if segment == "" || strings.Contains(segment, "(") {
			continue
		}
		opts[block[m[2]:m[3]]] = strings.TrimSpace(segment)
	}
	return opts
}
