package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/querycloud/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedQuestion inserts a question with an explicit created_at so ordering
// tests can control timestamps. Empty content gets a unique placeholder.
func SeedQuestion(t *testing.T, pool *pgxpool.Pool, content string, createdAt time.Time) domain.Question {
	t.Helper()

	if content == "" {
		content = "Test question " + uniqueSuffix()
	}
	q := domain.Question{
		ID:        uuid.New(),
		Content:   content,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO questions (id, content, created_at) VALUES ($1, $2, $3)`,
		q.ID, q.Content, q.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedQuestion: %v", err)
	}

	return q
}

// SeedAnswer inserts an answer under questionID with an explicit created_at.
func SeedAnswer(t *testing.T, pool *pgxpool.Pool, questionID uuid.UUID, content string, createdAt time.Time) domain.Answer {
	t.Helper()

	if content == "" {
		content = "Test answer " + uniqueSuffix()
	}
	a := domain.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		Content:    content,
		CreatedAt:  createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO answers (id, question_id, content, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.QuestionID, a.Content, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAnswer: %v", err)
	}

	return a
}
