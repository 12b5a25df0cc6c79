package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Question struct represents a stored, authoritative exam question
type Question struct {
	ID            int64     `json:"id"`
	SubjectID     string    `json:"subjectId"`
	TopicID       string    `json:"topicId"`
	Year          int       `json:"year"`
	Marks         int       `json:"marks"`
	QuestionText  string    `json:"questionText"`
	OptionA       string    `json:"optionA"`
	OptionB       string    `json:"optionB"`
	OptionC       string    `json:"optionC"`
	OptionD       string    `json:"optionD"`
	CorrectOption string    `json:"correctOption"`
	SolutionText  string    `json:"solutionText"`
	CreatedAt     time.Time `json:"createdAt"`
}

// QuestionInput is the body of POST /api/questions and one element of a bulk import.
// The binding tags carry the validation rules for an authoritative record.
type QuestionInput struct {
	SubjectID     string     `json:"subjectId" binding:"required"`
	TopicID       string     `json:"topicId" binding:"required"`
	Year          int        `json:"year" binding:"required,min=1990,max=2030"`
	Marks         int        `json:"marks" binding:"required,oneof=1 2"`
	QuestionText  string     `json:"questionText" binding:"required,min=10"`
	OptionA       string     `json:"optionA" binding:"required"`
	OptionB       string     `json:"optionB" binding:"required"`
	OptionC       string     `json:"optionC" binding:"required"`
	OptionD       string     `json:"optionD" binding:"required"`
	CorrectOption string     `json:"correctOption" binding:"required,oneof=A B C D"`
	SolutionText  string     `json:"solutionText"`
	AdminOnly     *AdminOnly `json:"_adminOnly,omitempty"`
}

// BulkImportRequest for POST /api/questions/bulk
type BulkImportRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// QuestionFilter narrows GET /api/questions
type QuestionFilter struct {
	SubjectID string `form:"subjectId"`
	TopicID   string `form:"topicId"`
}

// BlockMetadata is attached by the text parser to every question it extracts.
type BlockMetadata struct {
	Index     int `json:"index"`
	RawLength int `json:"rawLength"`
}

// AdminOnly is the advisory, never-persisted block produced by the suggestion engine.
type AdminOnly struct {
	SuggestedCorrectOption *string `json:"suggestedCorrectOption"`
	ConfidenceScore        float64 `json:"confidenceScore"`
	Reasoning              string  `json:"reasoning"`
	RequiresManualReview   bool    `json:"requiresManualReview"`
}

// ImportQuestion is a candidate question flowing through the offline pipeline:
// parsed from text, finalized with metadata, then annotated with a suggestion.
// CorrectOption and SolutionText stay nil until finalization sets them.
// Keys the struct does not name are kept in Extra and written back unchanged.
type ImportQuestion struct {
	SubjectID     string         `json:"subjectId,omitempty"`
	TopicID       string         `json:"topicId,omitempty"`
	Year          int            `json:"year,omitempty"`
	Marks         int            `json:"marks,omitempty"`
	QuestionText  string         `json:"questionText"`
	OptionA       string         `json:"optionA"`
	OptionB       string         `json:"optionB"`
	OptionC       string         `json:"optionC"`
	OptionD       string         `json:"optionD"`
	CorrectOption *string        `json:"correctOption,omitempty"`
	SolutionText  *string        `json:"solutionText,omitempty"`
	Metadata      *BlockMetadata `json:"_metadata,omitempty"`
	AdminOnly     *AdminOnly     `json:"_adminOnly,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// importQuestionKeys are the JSON keys ImportQuestion decodes into fields.
var importQuestionKeys = map[string]bool{
	"subjectId": true, "topicId": true, "year": true, "marks": true,
	"questionText": true, "optionA": true, "optionB": true, "optionC": true, "optionD": true,
	"correctOption": true, "solutionText": true, "_metadata": true, "_adminOnly": true,
}

type importQuestionFields ImportQuestion

// UnmarshalJSON decodes the known fields and collects every other key into Extra.
func (q *ImportQuestion) UnmarshalJSON(data []byte) error {
	var fields importQuestionFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if importQuestionKeys[key] {
			delete(raw, key)
		}
	}
	fields.Extra = nil
	if len(raw) > 0 {
		fields.Extra = raw
	}
	*q = ImportQuestion(fields)
	return nil
}

// MarshalJSON writes the known fields followed by Extra in key order.
// A key in Extra never overrides a field.
func (q ImportQuestion) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(importQuestionFields(q))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(q.Extra))
	for key := range q.Extra {
		if !importQuestionKeys[key] {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return data, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for i, key := range keys {
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value := q.Extra[key]
		if value == nil {
			value = json.RawMessage("null")
		}
		if !json.Valid(value) {
			return nil, fmt.Errorf("extra field %q is not valid JSON", key)
		}
		if i > 0 || len(data) > 2 {
			buf.WriteByte(',')
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BulkPayload is the file format shared by finalize, suggest and the bulk import endpoint.
type BulkPayload struct {
	Questions []ImportQuestion `json:"questions"`
}

// PracticeRequest for POST /api/practice
type PracticeRequest struct {
	SubjectID string `json:"subjectId" binding:"required"`
	TopicID   string `json:"topicId"`
	Count     int    `json:"count" binding:"omitempty,min=1,max=100"`
	Seed      string `json:"seed"`
}

// PracticeQuestion is a question as shown to a student, without its answer.
type PracticeQuestion struct {
	ID           int64  `json:"id"`
	SubjectID    string `json:"subjectId"`
	TopicID      string `json:"topicId"`
	Year         int    `json:"year"`
	Marks        int    `json:"marks"`
	QuestionText string `json:"questionText"`
	OptionA      string `json:"optionA"`
	OptionB      string `json:"optionB"`
	OptionC      string `json:"optionC"`
	OptionD      string `json:"optionD"`
}

// PracticeSet for POST /api/practice
type PracticeSet struct {
	Seed      string             `json:"seed"`
	SubjectID string             `json:"subjectId"`
	TopicID   string             `json:"topicId,omitempty"`
	Questions []PracticeQuestion `json:"questions"`
}

// AttemptRequest for POST /api/attempts
type AttemptRequest struct {
	QuestionID     int64  `json:"questionId" binding:"required"`
	SelectedOption string `json:"selectedOption" binding:"required,oneof=A B C D"`
}

// AttemptResult is the immediate feedback returned after an attempt.
type AttemptResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectOption string `json:"correctOption"`
	SolutionText  string `json:"solutionText"`
}

// Attempt represents one recorded answer by a student
type Attempt struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	QuestionID     int64     `json:"questionId"`
	SubjectID      string    `json:"subjectId"`
	TopicID        string    `json:"topicId"`
	SelectedOption string    `json:"selectedOption"`
	IsCorrect      bool      `json:"isCorrect"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SubjectStats is the per-subject slice of Stats.
type SubjectStats struct {
	SubjectID string `json:"subjectId"`
	Total     int    `json:"total"`
	Correct   int    `json:"correct"`
	Accuracy  int    `json:"accuracy"`
}

// Stats summarizes a student's attempts for GET /api/stats
type Stats struct {
	Total     int            `json:"total"`
	Correct   int            `json:"correct"`
	Incorrect int            `json:"incorrect"`
	Accuracy  int            `json:"accuracy"`
	BySubject []SubjectStats `json:"bySubject"`
}

// Subject is one entry of the syllabus catalog.
type Subject struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Code   string  `json:"code" yaml:"code"`
	Topics []Topic `json:"topics" yaml:"topics"`
}

// Topic is a syllabus topic within a subject.
type Topic struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	QuestionCount int    `json:"questionCount" yaml:"-"`
}

// ErrorLog represents an entry in the error_logs table
type ErrorLog struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	FilePath     *string   `json:"file_path"`
	ErrorMessage string    `json:"error_message"`
	SuggestedFix *string   `json:"suggested_fix"`
}

// AdminEvent represents an entry in the admin_events table
type AdminEvent struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Target    string    `json:"target"`
	Notes     string    `json:"notes"`
}

// SubjectCount is a question count grouped by subject and topic.
type SubjectCount struct {
	SubjectID string `json:"subjectId"`
	TopicID   string `json:"topicId"`
	Count     int    `json:"count"`
}
