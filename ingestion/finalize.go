package ingestion

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gate-tracker-server/models"
)

const unknownID = "unknown"

// FinalizeConfig is the metadata stamped on parsed questions. It is read from
// meta.yaml or command-line flags.
type FinalizeConfig struct {
	SubjectID    string `yaml:"subjectId"`
	TopicID      string `yaml:"topicId"`
	Year         int    `yaml:"year"`
	Marks        int    `yaml:"marks"`
	SolutionText string `yaml:"solutionText"`
}

// LoadFinalizeConfig reads a meta.yaml file.
func LoadFinalizeConfig(path string) (FinalizeConfig, error) {
	var cfg FinalizeConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Merge fills zero fields of c from other.
func (c FinalizeConfig) Merge(other FinalizeConfig) FinalizeConfig {
	if c.SubjectID == "" {
		c.SubjectID = other.SubjectID
	}
	if c.TopicID == "" {
		c.TopicID = other.TopicID
	}
	if c.Year == 0 {
		c.Year = other.Year
	}
	if c.Marks == 0 {
		c.Marks = other.Marks
	}
	if c.SolutionText == "" {
		c.SolutionText = other.SolutionText
	}
	return c
}

func (c FinalizeConfig) withDefaults(now time.Time) FinalizeConfig {
	return c.Merge(FinalizeConfig{
		SubjectID: unknownID,
		TopicID:   unknownID,
		Year:      now.Year(),
		Marks:     1,
	})
}

// Finalize prepares parsed questions for bulk import. Parser metadata is
// dropped, values already on a question win over cfg, and correctOption is
// always reset to "" for a reviewer to fill in.
func Finalize(parsed []models.ImportQuestion, cfg FinalizeConfig) models.BulkPayload {
	return finalizeAt(parsed, cfg, time.Now())
}

func finalizeAt(parsed []models.ImportQuestion, cfg FinalizeConfig, now time.Time) models.BulkPayload {
	cfg = cfg.withDefaults(now)
	out := make([]models.ImportQuestion, 0, len(parsed))
	for _, q := range parsed {
		q.Metadata = nil
		if q.SubjectID == "" {
			q.SubjectID = cfg.SubjectID
		}
		if q.TopicID == "" {
			q.TopicID = cfg.TopicID
		}
		if q.Year == 0 {
			q.Year = cfg.Year
		}
		if q.Marks == 0 {
			q.Marks = cfg.Marks
		}
		empty := ""
		solution := cfg.SolutionText
		q.CorrectOption = &empty
		q.SolutionText = &solution
		out = append(out, q)
	}
	return models.BulkPayload{Questions: out}
}
