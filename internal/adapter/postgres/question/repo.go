// Package question implements the Question repository using PostgreSQL.
// Statements are built with squirrel; answer_count is owned by a trigger on
// answers and is only ever read here.
package question

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

const table = "questions"

var columns = []string{"id", "content", "answer_count", "created_at"}

// Repo provides question persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new question repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns every question, newest first. Ties on created_at are broken
// by id so the order is stable across reloads.
func (r *Repo) List(ctx context.Context) ([]domain.Question, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list questions: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

// GetByID returns a single question.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get question: %w", err)
	}

	q, err := scanQuestion(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "question", id)
	}

	return &q, nil
}

// Create inserts a question with the given content. The id, created_at and
// answer_count are assigned by the database.
func (r *Repo) Create(ctx context.Context, content string) (*domain.Question, error) {
	query, args, err := postgres.Builder.
		Insert(table).
		Columns("content").
		Values(content).
		Suffix("RETURNING id, content, answer_count, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create question: %w", err)
	}

	q, err := scanQuestion(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "question", nil)
	}

	return &q, nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var (
		id          uuid.UUID
		content     string
		answerCount int32
		createdAt   time.Time
	)

	if err := row.Scan(&id, &content, &answerCount, &createdAt); err != nil {
		return domain.Question{}, err
	}

	return domain.Question{
		ID:          id,
		Content:     content,
		AnswerCount: int(answerCount),
		CreatedAt:   createdAt,
	}, nil
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if questions == nil {
		questions = []domain.Question{}
	}

	return questions, nil
}
