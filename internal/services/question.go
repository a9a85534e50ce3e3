package services

import (
	"context"
	"fmt"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/repos"
	"github.com/fastwise/tutr-backend/internal/types"
)

type QuestionService interface {
	Get(ctx context.Context, questionID string) (*types.Question, error)
	List(ctx context.Context, limit int) ([]*types.Question, error)
}

type questionService struct {
	questions repos.QuestionRepo
	cache     QuestionCache
	log       *logger.Logger
}

// cache may be nil; lookups then always hit the graph.
func NewQuestionService(questions repos.QuestionRepo, cache QuestionCache, baseLog *logger.Logger) QuestionService {
	return &questionService{
		questions: questions,
		cache:     cache,
		log:       baseLog.With("service", "QuestionService"),
	}
}

func (s *questionService) Get(ctx context.Context, questionID string) (*types.Question, error) {
	if s.cache != nil {
		if question, ok := s.cache.GetQuestion(ctx, questionID); ok {
			return question, nil
		}
	}

	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrQuestionNotFound, questionID)
	}

	if s.cache != nil {
		s.cache.SetQuestion(ctx, question)
	}
	return question, nil
}

func (s *questionService) List(ctx context.Context, limit int) ([]*types.Question, error) {
	return s.questions.ListAll(ctx, limit)
}
