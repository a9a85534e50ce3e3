package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fastwise/tutr-backend/internal/types"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondMapped translates the service error taxonomy onto HTTP statuses.
func RespondMapped(c *gin.Context, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		RespondError(c, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, types.ErrStudentNotFound):
		RespondError(c, http.StatusNotFound, "student_not_found", err)
	case errors.Is(err, types.ErrQuestionNotFound):
		RespondError(c, http.StatusNotFound, "question_not_found", err)
	case errors.Is(err, types.ErrNotConnected):
		RespondError(c, http.StatusServiceUnavailable, "database_unavailable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
