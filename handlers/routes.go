package handlers

import (
	"github.com/gin-gonic/gin"

	"gate-tracker-server/middleware"
	"gate-tracker-server/suggest"
	"gate-tracker-server/syllabus"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Store         Store
	Catalog       *syllabus.Catalog
	Engine        *suggest.Engine
	JWTSigningKey string
	Issuer        string
}

// RegisterRoutes mounts the public, student and admin route groups.
func RegisterRoutes(router *gin.Engine, d Deps) {
	authMiddleware := middleware.AuthMiddleware(d.JWTSigningKey, d.Issuer)
	adminOnly := middleware.RoleCheckMiddleware(middleware.RoleAdmin)

	api := router.Group("/api")
	{
		api.GET("", APIStatus())
		api.GET("/questions", ListQuestions(d.Store))
		api.GET("/questions/:id", GetQuestion(d.Store))
		api.GET("/subjects", ListSubjects(d.Store, d.Catalog))
		api.POST("/practice", BuildPractice(d.Store))
	}

	student := router.Group("/api")
	student.Use(authMiddleware)
	{
		student.POST("/attempts", SubmitAttempt(d.Store))
		student.GET("/stats", GetStats(d.Store))
	}

	adminAPI := router.Group("/api")
	adminAPI.Use(authMiddleware, adminOnly)
	{
		adminAPI.POST("/questions", CreateQuestion(d.Store))
		adminAPI.POST("/questions/bulk", BulkImportQuestions(d.Store))
		adminAPI.DELETE("/questions/:id", DeleteQuestion(d.Store))
		adminAPI.POST("/admin/suggest", SuggestAnswers(d.Store, d.Engine))
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminOnly)
	{
		admin.GET("/dashboard", AdminDashboard(d.Store, d.Catalog))
		admin.GET("/error_logs", AdminErrorLogs(d.Store))
	}
}
