package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/services"
)

var errMissingConcept = errors.New("query parameter 'concept' is required")

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// GET /api/students/:student_id/next-question
// A student with nothing left to master gets question: null, not an error.
func (h *RecommendationHandler) NextQuestion(c *gin.Context) {
	question, err := h.recSvc.NextQuestion(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, gin.H{"question": question})
}

// GET /api/students/:student_id/questions?concept=NAME
func (h *RecommendationHandler) QuestionsByConcept(c *gin.Context) {
	conceptName := c.Query("concept")
	if conceptName == "" {
		RespondError(c, http.StatusBadRequest, "missing_concept", errMissingConcept)
		return
	}
	questions, err := h.recSvc.QuestionsByConcept(c.Request.Context(), c.Param("student_id"), conceptName)
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

type completeQuestionRequest struct {
	Mastered *bool `json:"mastered" binding:"required"`
}

// POST /api/students/:student_id/questions/:question_id/complete
func (h *RecommendationHandler) CompleteQuestion(c *gin.Context) {
	var req completeQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	err := h.recSvc.CompleteQuestion(c.Request.Context(), c.Param("student_id"), c.Param("question_id"), *req.Mastered)
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, gin.H{"completed": true, "mastered": *req.Mastered})
}
