package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotConnected     = errors.New("database not initialized")
	ErrStudentNotFound  = errors.New("student not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// ValidationError reports which required fields are missing or which
// field-level rule an ingest item violated. It is recoverable: the pipeline
// records it and keeps going, it never aborts a batch.
type ValidationError struct {
	ItemID        string
	MissingFields []string
	Reason        string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("missing required fields: [%s]", strings.Join(e.MissingFields, ", "))
	}
	if e.Reason != "" {
		return e.Reason
	}
	return "invalid item"
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
