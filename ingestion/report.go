package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gate-tracker-server/models"
)

// DecodeQuestions accepts either a bare JSON array of questions or an
// object with a "questions" array.
func DecodeQuestions(data []byte) ([]models.ImportQuestion, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	var questions []models.ImportQuestion
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &questions); err != nil {
			return nil, fmt.Errorf("invalid question array: %w", err)
		}
	} else {
		var payload struct {
			Questions *[]models.ImportQuestion `json:"questions"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("invalid question payload: %w", err)
		}
		if payload.Questions == nil {
			return nil, fmt.Errorf(`input must be an array or an object with a "questions" array`)
		}
		questions = *payload.Questions
	}
	if questions == nil {
		questions = []models.ImportQuestion{}
	}
	return questions, nil
}

// LoadQuestions reads questions from a JSON file in either accepted shape.
func LoadQuestions(path string) ([]models.ImportQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	questions, err := DecodeQuestions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return questions, nil
}

// WriteJSON writes v to path with two-space indentation, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
