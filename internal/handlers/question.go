package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/services"
)

type QuestionHandler struct {
	log         *logger.Logger
	questionSvc services.QuestionService
}

func NewQuestionHandler(log *logger.Logger, questionSvc services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		log:         log.With("handler", "QuestionHandler"),
		questionSvc: questionSvc,
	}
}

// GET /api/questions?limit=N
func (h *QuestionHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	questions, err := h.questionSvc.List(c.Request.Context(), limit)
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": questions})
}

// GET /api/questions/:question_id
func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := h.questionSvc.Get(c.Request.Context(), c.Param("question_id"))
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, question)
}
