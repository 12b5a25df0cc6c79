package suggest

import (
	"time"

	"github.com/sourcegraph/conc/iter"

	"gate-tracker-server/models"
)

// ReviewThreshold is the aggregate confidence below which a question is
// flagged for manual review.
const ReviewThreshold = 0.6

// ReviewWarning is stamped on every report.
const ReviewWarning = "suggestedCorrectOption is for admin review only. Never use directly without verification."

// Metadata summarises one batch run.
type Metadata struct {
	RunID          string    `json:"runId"`
	GeneratedAt    time.Time `json:"generatedAt"`
	TotalQuestions int       `json:"totalQuestions"`
	HighConfidence int       `json:"highConfidence"`
	LowConfidence  int       `json:"lowConfidence"`
	Suggested      int       `json:"suggested"`
	NoSuggestion   int       `json:"noSuggestion"`
	Warning        string    `json:"warning"`
}

// Report is the output of a batch run: every input question annotated with
// its advisory block, plus summary counts.
type Report struct {
	Questions []models.ImportQuestion `json:"questions"`
	Metadata  Metadata                `json:"_metadata"`
}

// RequiresManualReview reports whether s falls below the engine's review
// threshold.
func (e *Engine) RequiresManualReview(s Suggestion) bool {
	return s.Confidence < e.threshold
}

// RunBatch runs the default engine over questions.
func RunBatch(questions []models.ImportQuestion) Report {
	return defaultEngine.RunBatch(questions)
}

// RunBatch annotates a copy of each question with its aggregate suggestion.
// Questions are evaluated concurrently; output order equals input order.
// The input slice is not modified and no question gets a correctOption.
func (e *Engine) RunBatch(questions []models.ImportQuestion) Report {
	annotated := iter.Map(questions, func(q *models.ImportQuestion) models.ImportQuestion {
		return e.annotate(*q, e.Aggregate(Normalize(*q)))
	})
	if annotated == nil {
		annotated = []models.ImportQuestion{}
	}

	meta := Metadata{
		RunID:          e.newID(),
		GeneratedAt:    e.now().UTC(),
		TotalQuestions: len(annotated),
		Warning:        ReviewWarning,
	}
	for _, q := range annotated {
		if q.AdminOnly.RequiresManualReview {
			meta.LowConfidence++
		} else {
			meta.HighConfidence++
		}
		if q.AdminOnly.SuggestedCorrectOption != nil {
			meta.Suggested++
		} else {
			meta.NoSuggestion++
		}
	}
	return Report{Questions: annotated, Metadata: meta}
}

func (e *Engine) annotate(q models.ImportQuestion, s Suggestion) models.ImportQuestion {
	var option *string
	if s.HasOption() {
		letter := string(s.Option)
		option = &letter
	}
	q.AdminOnly = &models.AdminOnly{
		SuggestedCorrectOption: option,
		ConfidenceScore:        s.Confidence,
		Reasoning:              s.Reasoning,
		RequiresManualReview:   e.RequiresManualReview(s),
	}
	return q
}

// Strip returns copies of questions without their advisory blocks. Import
// paths call this before anything is committed.
func Strip(questions []models.ImportQuestion) []models.ImportQuestion {
	out := make([]models.ImportQuestion, len(questions))
	for i, q := range questions {
		q.AdminOnly = nil
		out[i] = q
	}
	return out
}
