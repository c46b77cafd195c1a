// Package seeder loads demo questions and answers into the database in a
// single transaction.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/querycloud/internal/adapter/postgres"
	"github.com/heartmarshall/querycloud/internal/domain"
)

// Result counts what a run wrote (or would write, in dry-run mode).
type Result struct {
	Deleted   int64
	Questions int
	Answers   int
}

// Seeder writes threads through the transaction manager.
type Seeder struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	cfg  Config
	log  *slog.Logger
	now  func() time.Time
}

// New creates a Seeder.
func New(log *slog.Logger, pool *pgxpool.Pool, txm *postgres.TxManager, cfg Config) *Seeder {
	return &Seeder{
		pool: pool,
		txm:  txm,
		cfg:  cfg,
		log:  log.With("component", "seeder"),
		now:  time.Now,
	}
}

// Run inserts threads so that the first one is the newest question. Each
// answer is dated between its question and the next newer question.
// With Reset set, existing questions (and, by cascade, answers) are removed
// first. Nothing is written in dry-run mode.
func (s *Seeder) Run(ctx context.Context, threads []Thread) (Result, error) {
	if err := validateThreads(threads); err != nil {
		return Result{}, err
	}
	if s.cfg.Spacing <= 0 {
		return Result{}, fmt.Errorf("spacing must be > 0 (got %v)", s.cfg.Spacing)
	}

	var res Result
	if s.cfg.DryRun {
		for _, t := range threads {
			res.Questions++
			res.Answers += len(t.Answers)
		}
		s.log.Info("dry run", slog.Int("questions", res.Questions), slog.Int("answers", res.Answers))
		return res, nil
	}

	now := s.now()
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		res = Result{}
		q := postgres.QuerierFromCtx(ctx, s.pool)

		if s.cfg.Reset {
			deleted, err := s.reset(ctx, q)
			if err != nil {
				return err
			}
			res.Deleted = deleted
		}

		for i, t := range threads {
			askedAt := now.Add(-time.Duration(i+1) * s.cfg.Spacing)
			n, err := s.insertThread(ctx, q, t, askedAt)
			if err != nil {
				return fmt.Errorf("thread %d: %w", i, err)
			}
			res.Questions++
			res.Answers += n
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info("seeded",
		slog.Int64("deleted", res.Deleted),
		slog.Int("questions", res.Questions),
		slog.Int("answers", res.Answers),
	)
	return res, nil
}

func (s *Seeder) reset(ctx context.Context, q postgres.Querier) (int64, error) {
	query, args, err := postgres.Builder.Delete("questions").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Seeder) insertThread(ctx context.Context, q postgres.Querier, t Thread, askedAt time.Time) (int, error) {
	query, args, err := postgres.Builder.
		Insert("questions").
		Columns("content", "created_at").
		Values(domain.NormalizeContent(t.Question), askedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "question", nil)
	}

	if len(t.Answers) == 0 {
		return 0, nil
	}

	step := s.cfg.Spacing / time.Duration(len(t.Answers)+1)
	batch := &pgx.Batch{}
	for j, content := range t.Answers {
		query, args, err := postgres.Builder.
			Insert("answers").
			Columns("question_id", "content", "created_at").
			Values(id, domain.NormalizeContent(content), askedAt.Add(time.Duration(j+1)*step)).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build query: %w", err)
		}
		batch.Queue(query, args...)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range t.Answers {
		if _, err := br.Exec(); err != nil {
			return 0, postgres.MapError(err, "question", id)
		}
	}
	return len(t.Answers), nil
}
