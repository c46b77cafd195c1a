package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

// ListQuestions returns every question, newest first.
func (s *Service) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// GetQuestion returns one question with its current answer count.
func (s *Service) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

// CreateQuestion stores a question with normalized content.
func (s *Service) CreateQuestion(ctx context.Context, input CreateQuestionInput) (*domain.Question, error) {
	if err := input.Validate(s.limits.MaxQuestionLength); err != nil {
		return nil, err
	}

	q, err := s.questions.Create(ctx, domain.NormalizeContent(input.Content))
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	postsTotal.WithLabelValues(domain.CollectionQuestions.String()).Inc()
	s.log.InfoContext(ctx, "question posted",
		slog.String("question_id", q.ID.String()),
		slog.Int("length", len(q.Content)),
	)

	return q, nil
}
