package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fastwise/tutr-backend/internal/db"
	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/repos"
	"github.com/fastwise/tutr-backend/internal/services"
)

func main() {
	var filePath string
	var batchSize int
	var validateOnly bool
	var clearFirst bool
	flag.StringVar(&filePath, "file", "", "path to the curriculum JSON file")
	flag.IntVar(&batchSize, "batch-size", services.DefaultBatchSize, "items per processing batch")
	flag.BoolVar(&validateOnly, "validate-only", false, "validate structure without writing to the graph")
	flag.BoolVar(&clearFirst, "clear", false, "clear all graph data before ingesting")
	flag.Parse()

	if filePath == "" {
		fmt.Println("usage: ingest -file <path> [-batch-size N] [-validate-only] [-clear]")
		os.Exit(2)
	}

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if validateOnly {
		// Validation never touches the store, no connection needed.
		populationService := services.NewPopulationService(nil, nil, log)
		report, err := populationService.ValidateFile(filePath)
		if err != nil {
			fmt.Printf("validate: %v\n", err)
			os.Exit(1)
		}
		printJSON(report)
		return
	}

	ctx := context.Background()
	neo4jService, err := db.NewNeo4jService(log)
	if err != nil {
		fmt.Printf("neo4j: %v\n", err)
		os.Exit(1)
	}
	defer neo4jService.Close(ctx)

	setupRepo := repos.NewSetupRepo(neo4jService, log)
	if clearFirst {
		if err := setupRepo.ClearAllData(ctx); err != nil {
			fmt.Printf("clear: %v\n", err)
			os.Exit(1)
		}
	}
	setupRepo.EnsureSchema(ctx)

	curriculumRepo := repos.NewCurriculumRepo(neo4jService, log)
	populationService := services.NewPopulationService(curriculumRepo, nil, log)

	report, err := populationService.PopulateFromFile(ctx, filePath, batchSize)
	if err != nil {
		fmt.Printf("ingest: %v\n", err)
		os.Exit(1)
	}
	printJSON(report)
	if report.FailedItems > 0 {
		os.Exit(1)
	}
}

func printJSON(v any) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(raw))
}
