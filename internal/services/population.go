package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
)

const DefaultBatchSize = 100

// ItemUpserter is the one capability the pipeline needs from the graph
// layer: apply a single item transactionally. CurriculumRepo implements it.
type ItemUpserter interface {
	UpsertQuestion(ctx context.Context, item types.CurriculumItem) error
}

type PopulationService interface {
	PopulateFromFile(ctx context.Context, filePath string, batchSize int) (*types.IngestReport, error)
	PopulateFromItems(ctx context.Context, items []map[string]any, batchSize int) (*types.IngestReport, error)
	ValidateFile(filePath string) (*types.ValidationReport, error)
}

type populationService struct {
	upserter ItemUpserter
	cache    QuestionCache
	log      *logger.Logger
}

// cache may be nil; population then skips invalidation.
func NewPopulationService(upserter ItemUpserter, cache QuestionCache, baseLog *logger.Logger) PopulationService {
	return &populationService{
		upserter: upserter,
		cache:    cache,
		log:      baseLog.With("service", "PopulationService"),
	}
}

func (s *populationService) PopulateFromFile(ctx context.Context, filePath string, batchSize int) (*types.IngestReport, error) {
	s.log.Info("Starting data population from file", "file_path", filePath)
	items, err := loadItemsFromFile(filePath)
	if err != nil {
		s.log.Error("Data population failed", "file_path", filePath, "error", err)
		return nil, err
	}
	s.log.Info("Loaded items from file", "file_path", filePath, "count", len(items))
	return s.PopulateFromItems(ctx, items, batchSize)
}

func (s *populationService) PopulateFromItems(ctx context.Context, items []map[string]any, batchSize int) (*types.IngestReport, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	runID := uuid.NewString()
	log := s.log.With("run_id", runID)
	log.Info("Starting ingestion run", "total_items", len(items), "batch_size", batchSize)

	report := &types.IngestReport{
		RunID:          runID,
		TotalItems:     len(items),
		FailedItemIDs:  []string{},
		InvalidItemIDs: []string{},
	}

	// Validation happens for every item up front; invalid items never reach
	// the graph.
	valid := make([]types.CurriculumItem, 0, len(items))
	for _, raw := range items {
		if verr := validateRawItem(raw); verr != nil {
			report.InvalidItems++
			report.InvalidItemIDs = append(report.InvalidItemIDs, verr.ItemID)
			log.Warn("Invalid item excluded from ingestion", "item_id", verr.ItemID, "reason", verr.Error())
			continue
		}
		valid = append(valid, DecodeItem(raw))
	}

	for start := 0; start < len(valid); start += batchSize {
		end := start + batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]
		processed, err := s.processBatch(ctx, batch, report, log)
		if err != nil {
			return nil, err
		}
		log.Info("Processed batch",
			"batch", start/batchSize+1,
			"succeeded", processed,
			"batch_size", len(batch))
	}

	if s.cache != nil && report.ProcessedItems > 0 {
		s.cache.Flush(ctx)
	}

	log.Info("Ingestion run completed",
		"processed", report.ProcessedItems,
		"failed", report.FailedItems,
		"invalid", report.InvalidItems)
	return report, nil
}

// processBatch drives one isolated transaction per item. A failure on one
// item is recorded and the next item still runs; only a dead store aborts
// the run.
func (s *populationService) processBatch(ctx context.Context, batch []types.CurriculumItem, report *types.IngestReport, log *logger.Logger) (int, error) {
	processed := 0
	for _, item := range batch {
		if err := s.upserter.UpsertQuestion(ctx, item); err != nil {
			if errors.Is(err, types.ErrNotConnected) {
				return processed, err
			}
			report.FailedItems++
			report.FailedItemIDs = append(report.FailedItemIDs, item.ID)
			log.Error("Failed to process item", "item_id", item.ID, "error", err)
			continue
		}
		processed++
		report.ProcessedItems++
	}
	return processed, nil
}

func (s *populationService) ValidateFile(filePath string) (*types.ValidationReport, error) {
	s.log.Info("Validating data file", "file_path", filePath)
	items, err := loadItemsFromFile(filePath)
	if err != nil {
		return nil, err
	}

	report := &types.ValidationReport{
		TotalItems:     len(items),
		InvalidItemIDs: []string{},
	}
	for _, raw := range items {
		if verr := validateRawItem(raw); verr != nil {
			report.InvalidItems++
			report.InvalidItemIDs = append(report.InvalidItemIDs, verr.ItemID)
			report.Reasons = append(report.Reasons, fmt.Sprintf("%s: %s", verr.ItemID, verr.Error()))
			continue
		}
		report.ValidItems++
	}
	return report, nil
}

func validateRawItem(item map[string]any) *types.ValidationError {
	if verr := ValidateItem(item); verr != nil {
		return verr
	}
	return ValidateItemFields(item)
}

// The source must be a single JSON array of objects; anything else is fatal
// before any item is processed.
func loadItemsFromFile(filePath string) ([]map[string]any, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &types.ValidationError{Reason: fmt.Sprintf("invalid JSON format: %v", err)}
	}
	list, ok := top.([]any)
	if !ok {
		return nil, &types.ValidationError{Reason: "JSON file must contain an array of objects"}
	}

	items := make([]map[string]any, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, &types.ValidationError{Reason: fmt.Sprintf("array element %d is not an object", i)}
		}
		items = append(items, obj)
	}
	return items, nil
}
