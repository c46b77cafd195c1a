package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/querycloud/internal/adapter/postgres"
	"github.com/heartmarshall/querycloud/internal/adapter/postgres/answer"
	"github.com/heartmarshall/querycloud/internal/adapter/postgres/notify"
	"github.com/heartmarshall/querycloud/internal/adapter/postgres/question"
	"github.com/heartmarshall/querycloud/internal/config"
	"github.com/heartmarshall/querycloud/internal/service/board"
	"github.com/heartmarshall/querycloud/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database, applies migrations, and serves the API until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.SkipMigrations {
		logger.Info("migrations skipped")
	} else if err := postgres.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	return Serve(ctx, cfg, pool, logger, nil)
}

// Serve runs the change feed listener and the HTTP server until ctx is
// cancelled or either of them fails. When ln is nil the server listens on
// cfg.Server.Addr().
func Serve(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger, ln net.Listener) error {
	feed := notify.NewListener(logger, pool, cfg.Notify)
	svc := board.NewService(logger, question.New(pool), answer.New(pool), cfg.Board)

	handler := NewRouter(Handlers{
		Health:    rest.NewHealthHandler(pool, feed, BuildVersion()),
		Questions: rest.NewQuestionHandler(svc, logger),
		Changes:   rest.NewChangesHandler(feed, cfg.CORS.AllowedOrigins, cfg.Notify.PingInterval, logger),
	}, cfg.CORS, logger)

	// Upgraded WebSocket connections are not tracked by Shutdown; they end
	// when their request context, derived from connCtx, is cancelled.
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return connCtx },
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return feed.Run(gctx)
	})

	g.Go(func() error {
		var err error
		if ln != nil {
			logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
			err = srv.Serve(ln)
		} else {
			logger.Info("http server listening", slog.String("addr", srv.Addr))
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
		cancelConns()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
