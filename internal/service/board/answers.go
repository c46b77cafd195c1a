package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

// ListAnswers returns the answers of one question, newest first.
func (s *Service) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	if questionID == uuid.Nil {
		return nil, domain.NewValidationError("question_id", "required")
	}

	answers, err := s.answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

// CreateAnswer stores an answer under an existing question. The question's
// answer_count is updated by the database, not here.
func (s *Service) CreateAnswer(ctx context.Context, input CreateAnswerInput) (*domain.Answer, error) {
	if err := input.Validate(s.limits.MaxAnswerLength); err != nil {
		return nil, err
	}

	a, err := s.answers.Create(ctx, input.QuestionID, domain.NormalizeContent(input.Content))
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	postsTotal.WithLabelValues(domain.CollectionAnswers.String()).Inc()
	s.log.InfoContext(ctx, "answer posted",
		slog.String("question_id", a.QuestionID.String()),
		slog.String("answer_id", a.ID.String()),
		slog.Int("length", len(a.Content)),
	)

	return a, nil
}
