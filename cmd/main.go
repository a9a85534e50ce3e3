package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fastwise/tutr-backend/internal/db"
	"github.com/fastwise/tutr-backend/internal/handlers"
	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/repos"
	"github.com/fastwise/tutr-backend/internal/server"
	"github.com/fastwise/tutr-backend/internal/services"
	"github.com/fastwise/tutr-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Neo4j
	neo4jService, err := db.NewNeo4jService(log)
	if err != nil {
		log.Error("Neo4j init failed", "error", err)
		os.Exit(1)
	}
	defer neo4jService.Close(ctx)

	// Repos
	log.Info("Setting up repos from main...")
	setupRepo := repos.NewSetupRepo(neo4jService, log)
	curriculumRepo := repos.NewCurriculumRepo(neo4jService, log)
	questionRepo := repos.NewQuestionRepo(neo4jService, log)
	studentRepo := repos.NewStudentRepo(neo4jService, log)

	// Schema is idempotent and safe to run on every start.
	setupRepo.EnsureSchema(ctx)

	// Optional question cache
	questionCache, err := services.NewQuestionCache(log)
	if err != nil {
		log.Warn("Question cache init failed, continuing without cache", "error", err)
		questionCache = nil
	}

	// Services
	log.Info("Setting up services from main...")
	maxRecommendations := utils.GetEnvAsInt("MAX_RECOMMENDATIONS", 20, log)
	populationService := services.NewPopulationService(curriculumRepo, questionCache, log)
	recommendationService := services.NewRecommendationService(studentRepo, questionRepo, maxRecommendations, log)
	studentService := services.NewStudentService(studentRepo, log)
	questionService := services.NewQuestionService(questionRepo, questionCache, log)

	// Seed curriculum data when a source file is configured.
	if dataFile := utils.GetEnv("DATA_FILE", "", log); dataFile != "" {
		batchSize := utils.GetEnvAsInt("INGEST_BATCH_SIZE", services.DefaultBatchSize, log)
		report, err := populationService.PopulateFromFile(ctx, dataFile, batchSize)
		if err != nil {
			log.Error("Seed ingestion failed", "file_path", dataFile, "error", err)
			os.Exit(1)
		}
		log.Info("Seed ingestion completed",
			"run_id", report.RunID,
			"total", report.TotalItems,
			"processed", report.ProcessedItems,
			"failed", report.FailedItems,
			"invalid", report.InvalidItems)
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	healthHandler := handlers.NewHealthHandler(neo4jService)
	studentHandler := handlers.NewStudentHandler(log, studentService)
	questionHandler := handlers.NewQuestionHandler(log, questionService)
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)
	ingestHandler := handlers.NewIngestHandler(log, populationService, setupRepo)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		HealthHandler:         healthHandler,
		StudentHandler:        studentHandler,
		QuestionHandler:       questionHandler,
		RecommendationHandler: recommendationHandler,
		IngestHandler:         ingestHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
