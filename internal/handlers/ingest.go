package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/repos"
	"github.com/fastwise/tutr-backend/internal/services"
)

var errIngestSourceMissing = errors.New("either file_path or items is required")

type IngestHandler struct {
	log           *logger.Logger
	populationSvc services.PopulationService
	setupRepo     repos.SetupRepo
}

func NewIngestHandler(log *logger.Logger, populationSvc services.PopulationService, setupRepo repos.SetupRepo) *IngestHandler {
	return &IngestHandler{
		log:           log.With("handler", "IngestHandler"),
		populationSvc: populationSvc,
		setupRepo:     setupRepo,
	}
}

type ingestRequest struct {
	FilePath  string           `json:"file_path"`
	Items     []map[string]any `json:"items"`
	BatchSize int              `json:"batch_size"`
}

// POST /api/admin/ingest
// Body carries either a server-side file path or an inline item array.
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if req.FilePath == "" && req.Items == nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errIngestSourceMissing)
		return
	}

	ctx := c.Request.Context()
	if req.FilePath != "" {
		report, err := h.populationSvc.PopulateFromFile(ctx, req.FilePath, req.BatchSize)
		if err != nil {
			RespondMapped(c, err)
			return
		}
		RespondOK(c, report)
		return
	}

	report, err := h.populationSvc.PopulateFromItems(ctx, req.Items, req.BatchSize)
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, report)
}

type validateRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

// POST /api/admin/ingest/validate
func (h *IngestHandler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	report, err := h.populationSvc.ValidateFile(req.FilePath)
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, report)
}

// GET /api/admin/statistics
func (h *IngestHandler) Statistics(c *gin.Context) {
	stats, err := h.setupRepo.Statistics(c.Request.Context())
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, stats)
}

// POST /api/admin/clear
// Destructive: drops every node and relationship.
func (h *IngestHandler) Clear(c *gin.Context) {
	if err := h.setupRepo.ClearAllData(c.Request.Context()); err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, gin.H{"cleared": true})
}
