package utils

import (
	"regexp"
	"strings"
)

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	studentIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return emailPattern.MatchString(email)
}

// Student IDs are alphanumeric with underscores.
func ValidateStudentID(studentID string) bool {
	if studentID == "" {
		return false
	}
	return studentIDPattern.MatchString(studentID)
}
