package services

import (
	"context"
	"fmt"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/repos"
	"github.com/fastwise/tutr-backend/internal/types"
)

type RecommendationService interface {
	// NextQuestion returns (nil, nil) when the student has mastered
	// everything; an unknown student is types.ErrStudentNotFound.
	NextQuestion(ctx context.Context, studentID string) (*types.Question, error)
	QuestionsByConcept(ctx context.Context, studentID, conceptName string) ([]*types.Question, error)
	CompleteQuestion(ctx context.Context, studentID, questionID string, mastered bool) error
}

type recommendationService struct {
	students           repos.StudentRepo
	questions          repos.QuestionRepo
	maxRecommendations int
	log                *logger.Logger
}

func NewRecommendationService(students repos.StudentRepo, questions repos.QuestionRepo, maxRecommendations int, baseLog *logger.Logger) RecommendationService {
	if maxRecommendations <= 0 {
		maxRecommendations = 20
	}
	return &recommendationService{
		students:           students,
		questions:          questions,
		maxRecommendations: maxRecommendations,
		log:                baseLog.With("service", "RecommendationService"),
	}
}

func (s *recommendationService) NextQuestion(ctx context.Context, studentID string) (*types.Question, error) {
	s.log.Info("Generating recommendation", "student_id", studentID)

	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	questions, err := s.questions.FindUnmasteredForStudent(ctx, studentID, s.maxRecommendations)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		s.log.Info("No new questions available", "student_id", studentID)
		return nil, nil
	}

	ranked := s.applyRecommendationLogic(questions)
	return ranked[0], nil
}

func (s *recommendationService) QuestionsByConcept(ctx context.Context, studentID, conceptName string) ([]*types.Question, error) {
	s.log.Info("Finding questions by concept", "student_id", studentID, "concept", conceptName)

	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.questions.FindByConceptForStudent(ctx, studentID, conceptName, s.maxRecommendations)
}

func (s *recommendationService) CompleteQuestion(ctx context.Context, studentID, questionID string, mastered bool) error {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return err
	}
	return s.students.CompleteQuestion(ctx, studentID, questionID, mastered)
}

func (s *recommendationService) requireStudent(ctx context.Context, studentID string) error {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student == nil {
		return fmt.Errorf("%w: %s", types.ErrStudentNotFound, studentID)
	}
	return nil
}

// applyRecommendationLogic is the ranking seam. Today it returns the
// curriculum order unchanged; a real ranker (difficulty matching,
// prerequisite checks) slots in here.
func (s *recommendationService) applyRecommendationLogic(questions []*types.Question) []*types.Question {
	return questions
}
