package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gate-tracker-server/models"
)

func flipFlopQuestion() models.ImportQuestion {
	return models.ImportQuestion{
		QuestionText: "How many flip-flops are required for a MOD-6 counter?",
		OptionA:      "2",
		OptionB:      "3",
		OptionC:      "4",
		OptionD:      "6",
	}
}

func plainQuestion() models.ImportQuestion {
	return models.ImportQuestion{
		QuestionText: "Describe the resistor colour code briefly.",
		OptionA:      "red",
		OptionB:      "blue",
		OptionC:      "green",
		OptionD:      "gold",
	}
}

func negationQuestion() models.ImportQuestion {
	return models.ImportQuestion{
		QuestionText: "Which of the following is NOT a logic family?",
		OptionA:      "TTL",
		OptionB:      "CMOS",
		OptionC:      "ECL",
		OptionD:      "FIFO",
	}
}

func testEngine() *Engine {
	e := NewEngine()
	e.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	e.newID = func() string { return "run-1" }
	return e
}

func TestRunBatch_Statistics(t *testing.T) {
	var batch []models.ImportQuestion
	for i := 0; i < 4; i++ {
		batch = append(batch, flipFlopQuestion())
	}
	for i := 0; i < 5; i++ {
		batch = append(batch, plainQuestion())
	}
	batch = append(batch, negationQuestion())

	report := testEngine().RunBatch(batch)

	assert.Equal(t, Metadata{
		RunID:          "run-1",
		GeneratedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		TotalQuestions: 10,
		HighConfidence: 4,
		LowConfidence:  6,
		Suggested:      4,
		NoSuggestion:   6,
		Warning:        ReviewWarning,
	}, report.Metadata)
}

func TestRunBatch_AnnotatesInOrder(t *testing.T) {
	batch := []models.ImportQuestion{flipFlopQuestion(), plainQuestion(), negationQuestion()}
	batch[0].SubjectID = "digital"

	report := testEngine().RunBatch(batch)
	require.Len(t, report.Questions, 3)

	first := report.Questions[0]
	require.NotNil(t, first.AdminOnly)
	require.NotNil(t, first.AdminOnly.SuggestedCorrectOption)
	assert.Equal(t, "B", *first.AdminOnly.SuggestedCorrectOption)
	assert.Equal(t, 0.85, first.AdminOnly.ConfidenceScore)
	assert.False(t, first.AdminOnly.RequiresManualReview)
	assert.Equal(t, "digital", first.SubjectID, "other fields pass through")
	assert.Nil(t, first.CorrectOption, "the engine never sets a correct option")

	second := report.Questions[1]
	assert.Nil(t, second.AdminOnly.SuggestedCorrectOption)
	assert.Equal(t, 0.0, second.AdminOnly.ConfidenceScore)
	assert.Equal(t, "No strong match found", second.AdminOnly.Reasoning)
	assert.True(t, second.AdminOnly.RequiresManualReview)

	third := report.Questions[2]
	assert.Nil(t, third.AdminOnly.SuggestedCorrectOption)
	assert.Equal(t, 0.3, third.AdminOnly.ConfidenceScore)
	assert.True(t, third.AdminOnly.RequiresManualReview)

	for _, in := range batch {
		assert.Nil(t, in.AdminOnly, "input is not mutated")
	}
}

func TestRunBatch_ReviewFlagMatchesThreshold(t *testing.T) {
	batch := []models.ImportQuestion{flipFlopQuestion(), plainQuestion(), negationQuestion()}
	for _, out := range RunBatch(batch).Questions {
		assert.Equal(t, out.AdminOnly.ConfidenceScore < 0.6, out.AdminOnly.RequiresManualReview)
	}
}

func TestRunBatch_CustomThreshold(t *testing.T) {
	strict := testEngine().WithReviewThreshold(0.9)
	report := strict.RunBatch([]models.ImportQuestion{flipFlopQuestion()})

	require.Len(t, report.Questions, 1)
	assert.True(t, report.Questions[0].AdminOnly.RequiresManualReview)
	assert.Equal(t, 1, report.Metadata.LowConfidence)
	assert.Equal(t, 1, report.Metadata.Suggested)
}

func TestRunBatch_Empty(t *testing.T) {
	report := testEngine().RunBatch(nil)
	assert.NotNil(t, report.Questions)
	assert.Empty(t, report.Questions)
	assert.Equal(t, 0, report.Metadata.TotalQuestions)
}

func TestStrip(t *testing.T) {
	report := RunBatch([]models.ImportQuestion{flipFlopQuestion()})
	stripped := Strip(report.Questions)

	require.Len(t, stripped, 1)
	assert.Nil(t, stripped[0].AdminOnly)
	assert.NotNil(t, report.Questions[0].AdminOnly, "Strip copies")
	assert.Equal(t, report.Questions[0].QuestionText, stripped[0].QuestionText)
}

func TestNormalize(t *testing.T) {
	got := Normalize(models.ImportQuestion{QuestionText: "t", OptionA: "a", OptionC: "c"})
	assert.Equal(t, "t", got.Text)
	assert.Equal(t, "a", got.Options.Text(LetterA))
	assert.Equal(t, "", got.Options.Text(LetterB))
	assert.Equal(t, "c", got.Options.Text(LetterC))
	assert.Equal(t, "", got.Options.Text(Letter("E")))
}
