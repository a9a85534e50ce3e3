package services

import (
	"context"
	"fmt"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/repos"
	"github.com/fastwise/tutr-backend/internal/types"
	"github.com/fastwise/tutr-backend/internal/utils"
)

type StudentService interface {
	Register(ctx context.Context, student types.Student) error
	Get(ctx context.Context, studentID string) (*types.Student, error)
	Progress(ctx context.Context, studentID string) (*types.StudentProgress, error)
}

type studentService struct {
	students repos.StudentRepo
	log      *logger.Logger
}

func NewStudentService(students repos.StudentRepo, baseLog *logger.Logger) StudentService {
	return &studentService{
		students: students,
		log:      baseLog.With("service", "StudentService"),
	}
}

func (s *studentService) Register(ctx context.Context, student types.Student) error {
	if !utils.ValidateStudentID(student.StudentID) {
		return &types.ValidationError{ItemID: student.StudentID, Reason: "student_id must be alphanumeric with underscores"}
	}
	if !utils.ValidateEmail(student.Email) {
		return &types.ValidationError{ItemID: student.StudentID, Reason: "invalid email address"}
	}
	s.log.Info("Registering student", "student_id", student.StudentID, "email", student.Email)
	return s.students.Upsert(ctx, student)
}

func (s *studentService) Get(ctx context.Context, studentID string) (*types.Student, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrStudentNotFound, studentID)
	}
	return student, nil
}

func (s *studentService) Progress(ctx context.Context, studentID string) (*types.StudentProgress, error) {
	progress, err := s.students.ProgressSummary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrStudentNotFound, studentID)
	}
	return progress, nil
}
