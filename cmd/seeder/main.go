// Command seeder fills the board with demo questions and answers. All rows
// are written in one transaction.
//
// Flags:
//
//	--data           YAML file with threads (default: built-in demo board)
//	--reset          delete existing questions and answers first
//	--dry-run        validate the threads without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/querycloud/internal/adapter/postgres"
	"github.com/heartmarshall/querycloud/internal/app"
	"github.com/heartmarshall/querycloud/internal/app/seeder"
	"github.com/heartmarshall/querycloud/internal/config"
)

func main() {
	dataFlag := flag.String("data", "", "YAML file with threads (default: built-in demo board)")
	resetFlag := flag.Bool("reset", false, "delete existing questions and answers first")
	dryRunFlag := flag.Bool("dry-run", false, "validate threads without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dataFlag != "" {
		seederCfg.DataPath = *dataFlag
	}
	if *resetFlag {
		seederCfg.Reset = true
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	threads := seeder.DefaultThreads
	if seederCfg.DataPath != "" {
		threads, err = seeder.LoadThreads(seederCfg.DataPath)
		if err != nil {
			logger.Error("load threads", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if !appCfg.Database.SkipMigrations {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	s := seeder.New(logger, pool, postgres.NewTxManager(pool), *seederCfg)
	if _, err := s.Run(ctx, threads); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
