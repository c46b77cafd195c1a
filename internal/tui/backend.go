// Package tui is the terminal front-end of Query Cloud. Its components
// (List, Item, Form) own the client-side synchronization model: what is
// fetched and when, which results are applied, and how the change
// subscription is scoped to the list's lifetime.
package tui

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

// Backend is the data service the components read from and write to.
// Lists are returned newest first.
type Backend interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error)
	CreateQuestion(ctx context.Context, content string) (*domain.Question, error)
	CreateAnswer(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error)
	SubscribeToChanges(ctx context.Context, collection domain.Collection) (Subscription, error)
}

// Subscription delivers one value per change to the watched collection.
// Close releases it and closes the Changes channel; it is idempotent.
type Subscription interface {
	Changes() <-chan domain.ChangeEvent
	Close()
}
