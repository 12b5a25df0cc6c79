package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gate-tracker-server/ingestion"
	"gate-tracker-server/middleware"
	"gate-tracker-server/models"
	"gate-tracker-server/suggest"
	"gate-tracker-server/syllabus"
)

const bulkImportSource = "bulk_import"

const advisoryRejection = "_adminOnly suggestions must be reviewed and removed before import"

// CreateQuestion stores one reviewed question.
// POST /api/questions
func CreateQuestion(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.QuestionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if in.AdminOnly != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": advisoryRejection})
			return
		}

		ctx := c.Request.Context()
		q, err := store.CreateQuestion(ctx, in)
		if err != nil {
			log.Printf("Error creating question: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
			return
		}
		store.LogAdminEvent(ctx, c.GetString(middleware.ContextEmail), "create_question", strconv.FormatInt(q.ID, 10),
			fmt.Sprintf("%s/%s %d", q.SubjectID, q.TopicID, q.Year))
		c.JSON(http.StatusCreated, q)
	}
}

// BulkImportQuestions stores every question or none.
// POST /api/questions/bulk
func BulkImportQuestions(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		actor := c.GetString(middleware.ContextEmail)

		var req models.BulkImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			store.LogError(ctx, bulkImportSource, "", err.Error(), "Every question needs subject, topic, year, marks, four options and a reviewed correctOption")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for i, q := range req.Questions {
			if q.AdminOnly != nil {
				msg := fmt.Sprintf("question %d: %s", i+1, advisoryRejection)
				store.LogError(ctx, bulkImportSource, "", msg, "Run the suggestions through review and strip _adminOnly")
				c.JSON(http.StatusBadRequest, gin.H{"error": msg})
				return
			}
		}

		n, err := store.CreateQuestions(ctx, req.Questions)
		if err != nil {
			log.Printf("Error during bulk import: %v", err)
			store.LogError(ctx, bulkImportSource, "", err.Error(), "")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import questions"})
			return
		}
		store.LogAdminEvent(ctx, actor, "bulk_import", "questions", fmt.Sprintf("Imported %d questions", n))
		c.JSON(http.StatusCreated, gin.H{"message": "Questions imported successfully", "inserted": n})
	}
}

// DeleteQuestion removes a question and its attempts.
// DELETE /api/questions/:id
func DeleteQuestion(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := questionID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := store.DeleteQuestion(ctx, id); err != nil {
			if isNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
				return
			}
			log.Printf("Error deleting question %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
			return
		}
		store.LogAdminEvent(ctx, c.GetString(middleware.ContextEmail), "delete_question", strconv.FormatInt(id, 10), "")
		c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully", "id": id})
	}
}

// SuggestAnswers annotates candidate questions with advisory answers.
// Nothing is stored. Body is a question array or {"questions": [...]}.
// POST /api/admin/suggest
func SuggestAnswers(store Store, engine *suggest.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}
		questions, err := ingestion.DecodeQuestions(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		report := engine.RunBatch(questions)
		store.LogAdminEvent(c.Request.Context(), c.GetString(middleware.ContextEmail), "suggest_answers", report.Metadata.RunID,
			fmt.Sprintf("%d questions, %d suggested, %d need review",
				report.Metadata.TotalQuestions, report.Metadata.Suggested, report.Metadata.LowConfidence))
		c.JSON(http.StatusOK, report)
	}
}

// AdminDashboard renders question counts and recent admin activity.
// GET /admin/dashboard
func AdminDashboard(store Store, catalog *syllabus.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		counts, err := store.CountBySubject(ctx)
		if err != nil {
			log.Printf("Error counting questions for dashboard: %v", err)
		}
		total := 0
		for _, sc := range counts {
			total += sc.Count
		}

		events, err := store.RecentAdminEvents(ctx, 10)
		if err != nil {
			log.Printf("Error fetching recent admin events: %v", err)
		}

		c.HTML(http.StatusOK, "admin_dashboard", gin.H{
			"Title":             "GATE Tracker Admin Dashboard",
			"TotalQuestions":    total,
			"Subjects":          catalog.WithCounts(counts),
			"Uncatalogued":      catalog.Uncatalogued(counts),
			"RecentAdminEvents": events,
			"UserEmail":         c.GetString(middleware.ContextEmail),
		})
	}
}

// errorLogLimit caps the error log page.
const errorLogLimit = 200

// AdminErrorLogs lists ingestion and import failures, newest first.
// GET /admin/error_logs?source=ingestion
func AdminErrorLogs(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.Query("source")
		logs, err := store.RecentErrors(c.Request.Context(), source, errorLogLimit)
		if err != nil {
			log.Printf("Error querying error logs: %v", err)
			c.HTML(http.StatusInternalServerError, "admin_error_logs", gin.H{
				"Title": "Error Logs",
				"Error": "Failed to retrieve error logs",
			})
			return
		}

		c.HTML(http.StatusOK, "admin_error_logs", gin.H{
			"Title":        "Error Logs",
			"ErrorLogs":    logs,
			"SearchSource": source,
			"UserEmail":    c.GetString(middleware.ContextEmail),
		})
	}
}
