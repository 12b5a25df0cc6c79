package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gate-tracker-server/middleware"
	"gate-tracker-server/models"
	"gate-tracker-server/practice"
	"gate-tracker-server/syllabus"
)

// APIStatus is a liveness probe.
// GET /api
func APIStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "GATE Tracker API is running"})
	}
}

// ListQuestions lists questions newest first.
// GET /api/questions?subjectId=&topicId=
func ListQuestions(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.QuestionFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		questions, err := store.ListQuestions(c.Request.Context(), filter)
		if err != nil {
			log.Printf("Error listing questions: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve questions"})
			return
		}
		if questions == nil {
			questions = []models.Question{}
		}
		c.JSON(http.StatusOK, questions)
	}
}

// GetQuestion returns one question with its answer.
// GET /api/questions/:id
func GetQuestion(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := questionID(c)
		if !ok {
			return
		}
		q, err := store.GetQuestion(c.Request.Context(), id)
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		if err != nil {
			log.Printf("Error fetching question %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve question"})
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

// ListSubjects returns the syllabus with per-topic question counts.
// GET /api/subjects
func ListSubjects(store Store, catalog *syllabus.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := store.CountBySubject(c.Request.Context())
		if err != nil {
			log.Printf("Error counting questions: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subjects"})
			return
		}
		c.JSON(http.StatusOK, catalog.WithCounts(counts))
	}
}

// BuildPractice returns a reproducible practice set without answers. When no
// seed is given a fresh one is generated and echoed back for replay.
// POST /api/practice
func BuildPractice(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PracticeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Seed == "" {
			req.Seed = uuid.NewString()
		}

		bank, err := store.ListQuestions(c.Request.Context(), models.QuestionFilter{SubjectID: req.SubjectID})
		if err != nil {
			log.Printf("Error loading practice bank for %s: %v", req.SubjectID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build practice set"})
			return
		}
		c.JSON(http.StatusOK, practice.BuildSet(bank, req))
	}
}

// SubmitAttempt grades an answer and records it for the caller.
// POST /api/attempts
func SubmitAttempt(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AttemptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx := c.Request.Context()

		q, err := store.GetQuestion(ctx, req.QuestionID)
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Question %d not found", req.QuestionID)})
			return
		}
		if err != nil {
			log.Printf("Error fetching question %d for attempt: %v", req.QuestionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grade attempt"})
			return
		}

		result := practice.Grade(q, req.SelectedOption)
		attempt := models.Attempt{
			ID:             uuid.NewString(),
			Email:          c.GetString(middleware.ContextEmail),
			QuestionID:     q.ID,
			SubjectID:      q.SubjectID,
			TopicID:        q.TopicID,
			SelectedOption: req.SelectedOption,
			IsCorrect:      result.IsCorrect,
		}
		if err := store.RecordAttempt(ctx, attempt); err != nil {
			log.Printf("Error recording attempt: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attempt"})
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// GetStats summarizes the caller's attempts.
// GET /api/stats
func GetStats(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(middleware.ContextEmail)
		attempts, err := store.ListAttempts(c.Request.Context(), email)
		if err != nil {
			log.Printf("Error listing attempts for %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
			return
		}
		c.JSON(http.StatusOK, practice.Summarize(attempts))
	}
}
