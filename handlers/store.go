package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"gate-tracker-server/db"
	"gate-tracker-server/models"
)

// Store is the persistence the handlers need. *db.Store implements it.
type Store interface {
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	GetQuestion(ctx context.Context, id int64) (models.Question, error)
	CreateQuestion(ctx context.Context, in models.QuestionInput) (models.Question, error)
	CreateQuestions(ctx context.Context, in []models.QuestionInput) (int, error)
	DeleteQuestion(ctx context.Context, id int64) error
	CountBySubject(ctx context.Context) ([]models.SubjectCount, error)
	RecordAttempt(ctx context.Context, a models.Attempt) error
	ListAttempts(ctx context.Context, email string) ([]models.Attempt, error)
	LogError(ctx context.Context, source, filePath, errMsg, fixSug string)
	LogAdminEvent(ctx context.Context, actor, action, target, notes string)
	RecentAdminEvents(ctx context.Context, limit int) ([]models.AdminEvent, error)
	RecentErrors(ctx context.Context, source string, limit int) ([]models.ErrorLog, error)
}

var _ Store = (*db.Store)(nil)

// NewRenderer loads the admin HTML templates from dir.
func NewRenderer(dir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromFiles("admin_dashboard", dir+"/layout.html", dir+"/admin_dashboard.html")
	r.AddFromFiles("admin_error_logs", dir+"/layout.html", dir+"/admin_error_logs.html")
	return r
}

// questionID reads the :id path parameter, answering 400 when it is not a number.
func questionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return 0, false
	}
	return id, true
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
