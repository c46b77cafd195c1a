// Package answer implements the Answer repository using PostgreSQL.
package answer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/querycloud/internal/adapter/postgres"
	"github.com/heartmarshall/querycloud/internal/domain"
)

const table = "answers"

var columns = []string{"id", "question_id", "content", "created_at"}

// Repo provides answer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new answer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListByQuestion returns the answers of one question, newest first.
// An unknown question yields an empty slice, not an error.
func (r *Repo) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where("question_id = ?", questionID).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list answers: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list answers for question %s: %w", questionID, err)
	}
	defer rows.Close()

	answers, err := scanAnswers(rows)
	if err != nil {
		return nil, fmt.Errorf("list answers for question %s: %w", questionID, err)
	}

	return answers, nil
}

// Create inserts an answer under questionID. A missing parent question is
// reported as domain.ErrNotFound via the foreign key.
func (r *Repo) Create(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error) {
	query, args, err := postgres.Builder.
		Insert(table).
		Columns("question_id", "content").
		Values(questionID, content).
		Suffix("RETURNING id, question_id, content, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create answer: %w", err)
	}

	a, err := scanAnswer(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "question", questionID)
	}

	return &a, nil
}

func scanAnswer(row pgx.Row) (domain.Answer, error) {
	var (
		id         uuid.UUID
		questionID uuid.UUID
		content    string
		createdAt  time.Time
	)

	if err := row.Scan(&id, &questionID, &content, &createdAt); err != nil {
		return domain.Answer{}, err
	}

	return domain.Answer{
		ID:         id,
		QuestionID: questionID,
		Content:    content,
		CreatedAt:  createdAt,
	}, nil
}

func scanAnswers(rows pgx.Rows) ([]domain.Answer, error) {
	var answers []domain.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if answers == nil {
		answers = []domain.Answer{}
	}

	return answers, nil
}
