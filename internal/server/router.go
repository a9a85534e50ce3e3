package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fastwise/tutr-backend/internal/handlers"
)

type RouterConfig struct {
	HealthHandler         *handlers.HealthHandler
	StudentHandler        *handlers.StudentHandler
	QuestionHandler       *handlers.QuestionHandler
	RecommendationHandler *handlers.RecommendationHandler
	IngestHandler         *handlers.IngestHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		// Students
		api.POST("/students", cfg.StudentHandler.Register)
		api.GET("/students/:student_id", cfg.StudentHandler.Get)
		api.GET("/students/:student_id/progress", cfg.StudentHandler.Progress)

		// Recommendations
		api.GET("/students/:student_id/next-question", cfg.RecommendationHandler.NextQuestion)
		api.GET("/students/:student_id/questions", cfg.RecommendationHandler.QuestionsByConcept)
		api.POST("/students/:student_id/questions/:question_id/complete", cfg.RecommendationHandler.CompleteQuestion)

		// Questions
		api.GET("/questions", cfg.QuestionHandler.List)
		api.GET("/questions/:question_id", cfg.QuestionHandler.Get)

		// Admin
		admin := api.Group("/admin")
		admin.POST("/ingest", cfg.IngestHandler.Ingest)
		admin.POST("/ingest/validate", cfg.IngestHandler.Validate)
		admin.GET("/statistics", cfg.IngestHandler.Statistics)
		admin.POST("/clear", cfg.IngestHandler.Clear)
	}

	return router
}
