// Package syllabus holds the GATE ECE subject and topic catalog.
package syllabus

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"gate-tracker-server/models"
)

//go:embed syllabus.yaml
var catalogYAML []byte

// Catalog is the ordered list of subjects.
type Catalog struct {
	Subjects []models.Subject `yaml:"subjects"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog from YAML and checks that ids are unique.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse syllabus: %w", err)
	}
	seen := make(map[string]bool)
	for _, s := range cat.Subjects {
		if s.ID == "" {
			return nil, fmt.Errorf("subject %q has no id", s.Name)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate subject id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return &cat, nil
}

// Subject finds a subject by id or exam code, case-insensitively.
func (c *Catalog) Subject(key string) (models.Subject, bool) {
	for _, s := range c.Subjects {
		if strings.EqualFold(s.ID, key) || strings.EqualFold(s.Code, key) {
			return s, true
		}
	}
	return models.Subject{}, false
}

// WithCounts returns a copy of the catalog with QuestionCount filled in from
// counts. Stored questions may reference a subject by id or by code.
func (c *Catalog) WithCounts(counts []models.SubjectCount) []models.Subject {
	out := make([]models.Subject, len(c.Subjects))
	for i, s := range c.Subjects {
		topics := make([]models.Topic, len(s.Topics))
		copy(topics, s.Topics)
		for j := range topics {
			for _, sc := range counts {
				if (strings.EqualFold(sc.SubjectID, s.ID) || strings.EqualFold(sc.SubjectID, s.Code)) &&
					strings.EqualFold(sc.TopicID, topics[j].ID) {
					topics[j].QuestionCount += sc.Count
				}
			}
		}
		s.Topics = topics
		out[i] = s
	}
	return out
}

// Uncatalogued returns the counts whose subject and topic pair is not in the catalog,
// e.g. questions finalized with the "unknown" defaults.
func (c *Catalog) Uncatalogued(counts []models.SubjectCount) []models.SubjectCount {
	var out []models.SubjectCount
	for _, sc := range counts {
		if !c.hasTopic(sc.SubjectID, sc.TopicID) {
			out = append(out, sc)
		}
	}
	return out
}

func (c *Catalog) hasTopic(subjectID, topicID string) bool {
	s, ok := c.Subject(subjectID)
	if !ok {
		return false
	}
	for _, t := range s.Topics {
		if strings.EqualFold(t.ID, topicID) {
			return true
		}
	}
	return false
}
