package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fastwise/tutr-backend/internal/types"
)

func TestRegister_ValidStudent(t *testing.T) {
	students := newFakeStudentRepo()
	svc := NewStudentService(students, newTestLogger(t))

	err := svc.Register(context.Background(), types.Student{
		StudentID: "ashish_b",
		Name:      "Ashish Bhardwaj",
		Email:     "ashish.bhardwaj@fastwise.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students.upserts) != 1 || students.upserts[0].StudentID != "ashish_b" {
		t.Fatalf("expected one upsert for ashish_b, got %+v", students.upserts)
	}
}

func TestRegister_RejectsBadEmail(t *testing.T) {
	students := newFakeStudentRepo()
	svc := NewStudentService(students, newTestLogger(t))

	err := svc.Register(context.Background(), types.Student{
		StudentID: "s1",
		Name:      "S",
		Email:     "not-an-email",
	})
	if !types.IsValidationError(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(students.upserts) != 0 {
		t.Fatal("invalid student must not be upserted")
	}
}

func TestRegister_RejectsBadStudentID(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo(), newTestLogger(t))

	err := svc.Register(context.Background(), types.Student{
		StudentID: "bad id!",
		Name:      "S",
		Email:     "s@example.com",
	})
	if !types.IsValidationError(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestGet_UnknownStudent(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo(), newTestLogger(t))

	_, err := svc.Get(context.Background(), "ghost")
	if !errors.Is(err, types.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestProgress_KnownStudent(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo("s1"), newTestLogger(t))

	progress, err := svc.Progress(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.StudentID != "s1" {
		t.Fatalf("unexpected progress: %+v", progress)
	}
}
