package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func q(text string, a, b, c, d string) Question {
	return Question{Text: text, Options: Options{a, b, c, d}}
}

func TestDefinitionHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		question   Question
		wantOption Letter
		wantConf   float64
		wantReason string
	}{
		{
			name:       "what is laplace transform",
			question:   q("What is the Laplace transform of u(t)?", "s", "1/s", "1/s^2", "e^-s"),
			wantOption: LetterB,
			wantConf:   0.75,
			wantReason: `Definition match for "laplace transform"`,
		},
		{
			name:       "define thevenin",
			question:   q("Define Thevenin's theorem.", "A current source in parallel", "An equivalent voltage source in series", "A dependent source", "None"),
			wantOption: LetterB,
			wantConf:   0.75,
			wantReason: `Definition match for "thevenin"`,
		},
		{
			name:       "refers to norton",
			question:   q("Norton equivalent refers to", "voltage source in series", "current source in parallel", "ideal transformer", "gyrator"),
			wantOption: LetterB,
			wantConf:   0.75,
			wantReason: `Definition match for "norton"`,
		},
		{
			name:       "first matching option wins",
			question:   q("What is the Fourier transform?", "Frequency domain view", "A spectrum", "Time shift", "None"),
			wantOption: LetterA,
			wantConf:   0.75,
			wantReason: `Definition match for "fourier"`,
		},
		{
			name:       "unknown term",
			question:   q("What is the gain of an ideal op-amp?", "0", "1", "infinite", "100"),
			wantReason: "No definition match",
		},
		{
			name:       "known term but no option matches",
			question:   q("What is the Laplace transform of u(t)?", "s", "s^2", "e^-s", "0"),
			wantReason: "No definition match",
		},
		{
			name:       "not a definition prompt",
			question:   q("Laplace transform of a unit step", "1/s", "s", "1", "0"),
			wantReason: "No definition match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefinitionHeuristic{}.Evaluate(tt.question)
			assert.Equal(t, tt.wantOption, got.Option)
			assert.Equal(t, tt.wantConf, got.Confidence)
			assert.Equal(t, tt.wantReason, got.Reasoning)
		})
	}
}

func TestNumericHeuristic_FlipFlops(t *testing.T) {
	got := NumericHeuristic{}.Evaluate(q("How many flip-flops are required for a MOD-6 counter?", "2", "3", "4", "6"))

	assert.Equal(t, LetterB, got.Option)
	assert.Equal(t, 0.85, got.Confidence)
	assert.Equal(t, "MOD-6 requires 3 flip-flops (2^3 = 8)", got.Reasoning)
}

func TestNumericHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		question   Question
		wantOption Letter
		wantConf   float64
		wantReason string
	}{
		{
			name:       "mod with space and integers inside text",
			question:   q("Calculate the number of flip-flops in a mod 16 ripple counter", "2 flip-flops", "8 flip-flops", "16 flip-flops", "4 flip-flops"),
			wantOption: LetterD,
			wantConf:   0.85,
			wantReason: "MOD-16 requires 4 flip-flops (2^4 = 16)",
		},
		{
			name:       "no option carries the count",
			question:   q("How many flip-flops does a MOD-10 counter need?", "2", "3", "5", "10"),
			wantReason: "No numeric pattern match",
		},
		{
			name:       "generic numeric question",
			question:   q("Calculate the equivalent resistance of two 10 ohm resistors in parallel", "5", "10", "20", "2"),
			wantReason: "No numeric pattern match",
		},
		{
			name:       "flip-flop without modulus",
			question:   q("How many flip-flops are in a 4-bit register with mode control?", "2", "4", "8", "16"),
			wantReason: "No numeric pattern match",
		},
		{
			name:       "zero modulus",
			question:   q("How many flip-flops for a MOD-0 counter?", "0", "1", "2", "3"),
			wantReason: "No numeric pattern match",
		},
		{
			name:       "not numeric",
			question:   q("Which flip-flop is used in a MOD-4 counter?", "JK", "D", "T", "SR"),
			wantReason: "Not a numeric question",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NumericHeuristic{}.Evaluate(tt.question)
			assert.Equal(t, tt.wantOption, got.Option)
			assert.Equal(t, tt.wantConf, got.Confidence)
			assert.Equal(t, tt.wantReason, got.Reasoning)
		})
	}
}

func TestFormulaHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		question   Question
		wantOption Letter
		wantConf   float64
		wantReason string
	}{
		{
			name:       "laplace of unit step",
			question:   q("Find the Laplace transform of u(t)", "s", "1", "1/s", "0"),
			wantOption: LetterC,
			wantConf:   0.8,
			wantReason: `Formula match for pattern: laplace.*u\(t\)`,
		},
		{
			name:       "sampling theorem",
			question:   q("According to the sampling theorem, a signal must be sampled at", "its bandwidth", "any rate", "2 times the highest frequency", "half the highest frequency"),
			wantOption: LetterC,
			wantConf:   0.75,
			wantReason: "Formula match for pattern: sampling.*theorem",
		},
		{
			name:       "ohm's law",
			question:   q("State Ohm's law", "P = VI", "V = IR", "Q = CV", "E = mc^2"),
			wantOption: LetterB,
			wantConf:   0.7,
			wantReason: "Formula match for pattern: ohm.*law",
		},
		{
			name:       "rule matches question but no option",
			question:   q("State Ohm's law", "P = W/t", "Q = CV", "F = ma", "E = mc^2"),
			wantReason: "No formula match",
		},
		{
			name:       "no rule",
			question:   q("Explain the Miller effect", "a", "b", "c", "d"),
			wantReason: "No formula match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormulaHeuristic{}.Evaluate(tt.question)
			assert.Equal(t, tt.wantOption, got.Option)
			assert.Equal(t, tt.wantConf, got.Confidence)
			assert.Equal(t, tt.wantReason, got.Reasoning)
		})
	}
}

func TestKeywordDensityHeuristic(t *testing.T) {
	got := KeywordDensityHeuristic{}.Evaluate(q(
		"What happens during reverse bias in a PN junction diode?",
		"Current increases sharply",
		"The depletion region shrinks",
		"The depletion region at the junction widens under reverse voltage",
		"Holes recombine with electrons",
	))

	assert.Equal(t, LetterC, got.Option)
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
	assert.Equal(t, "Keyword density: 2 matches", got.Reasoning)
}

func TestKeywordDensityHeuristic_CapAndTies(t *testing.T) {
	question := "Explain forward biased silicon junction diode conduction"
	got := KeywordDensityHeuristic{}.Evaluate(q(question,
		"nothing relevant",
		"forward biased silicon junction diode conduction",
		"forward biased silicon junction diode conduction",
		"diode",
	))

	assert.Equal(t, LetterB, got.Option, "first option with the max count wins")
	assert.InDelta(t, 0.7, got.Confidence, 1e-9, "confidence is capped")
	assert.Equal(t, "Keyword density: 6 matches", got.Reasoning)
}

func TestKeywordDensityHeuristic_LowDensity(t *testing.T) {
	got := KeywordDensityHeuristic{}.Evaluate(q("Which gate is universal?", "NAND gate", "XOR", "universal", "AND"))

	assert.Equal(t, Letter(""), got.Option)
	assert.Equal(t, 0.0, got.Confidence)
	assert.Equal(t, "Low keyword density", got.Reasoning)
}

func TestExtractKeywords(t *testing.T) {
	got := extractKeywords("What's the PN-junction's  reverse bias? bias!")
	assert.Equal(t, []string{"whats", "pnjunctions", "reverse", "bias", "bias"}, got)
}

func TestNegationHeuristic(t *testing.T) {
	tests := []struct {
		text    string
		trigger bool
	}{
		{"Which of the following is NOT a valid Boolean identity?", true},
		{"All of the following are amplifiers except", true},
		{"Which statement is false?", true},
		{"Identify the incorrect option", true},
		{"A BJT is never used as a switch when", true},
		{"The output cannot exceed the supply", false},
		{"Nothing flows through an open circuit", false},
		{"Which gate is universal?", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := NegationHeuristic{}.Evaluate(q(tt.text, "x + x = x", "x . x = x", "x + 1 = 1", "x . 0 = 1"))
			assert.Equal(t, Letter(""), got.Option, "negation never proposes an option")
			if tt.trigger {
				assert.Equal(t, 0.3, got.Confidence)
				assert.Equal(t, "Negation question detected - requires manual review", got.Reasoning)
			} else {
				assert.Equal(t, 0.0, got.Confidence)
				assert.Equal(t, "No negation pattern", got.Reasoning)
			}
		})
	}
}

func TestHeuristics_EmptyQuestion(t *testing.T) {
	for _, h := range DefaultBattery() {
		t.Run(h.Name(), func(t *testing.T) {
			got := h.Evaluate(Question{})
			assert.Equal(t, 0.0, got.Confidence)
			assert.False(t, got.HasOption())
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}
