// Package board implements the question and answer use cases served over
// the REST API: listing newest-first and posting anonymously.
package board

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/config"
	"github.com/heartmarshall/querycloud/internal/domain"
)

type questionRepo interface {
	List(ctx context.Context) ([]domain.Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	Create(ctx context.Context, content string) (*domain.Question, error)
}

type answerRepo interface {
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error)
	Create(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error)
}

// Service provides board operations.
type Service struct {
	questions questionRepo
	answers   answerRepo
	limits    config.BoardConfig
	log       *slog.Logger
}

// NewService creates a new board service.
func NewService(
	log *slog.Logger,
	questions questionRepo,
	answers answerRepo,
	limits config.BoardConfig,
) *Service {
	return &Service{
		questions: questions,
		answers:   answers,
		limits:    limits,
		log:       log.With("service", "board"),
	}
}
