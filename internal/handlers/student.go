package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/services"
	"github.com/fastwise/tutr-backend/internal/types"
)

type StudentHandler struct {
	log        *logger.Logger
	studentSvc services.StudentService
}

func NewStudentHandler(log *logger.Logger, studentSvc services.StudentService) *StudentHandler {
	return &StudentHandler{
		log:        log.With("handler", "StudentHandler"),
		studentSvc: studentSvc,
	}
}

type registerStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

// POST /api/students
func (h *StudentHandler) Register(c *gin.Context) {
	var req registerStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	student := types.Student{
		StudentID: req.StudentID,
		Name:      req.Name,
		Email:     req.Email,
	}
	if err := h.studentSvc.Register(c.Request.Context(), student); err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, gin.H{"student_id": req.StudentID})
}

// GET /api/students/:student_id
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentSvc.Get(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, student)
}

// GET /api/students/:student_id/progress
func (h *StudentHandler) Progress(c *gin.Context) {
	progress, err := h.studentSvc.Progress(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		RespondMapped(c, err)
		return
	}
	RespondOK(c, progress)
}
