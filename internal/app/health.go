package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/langid/internal/cli"
	"horse.fit/langid/internal/config"
	"horse.fit/langid/internal/corpus"
	"horse.fit/langid/internal/db"
	"horse.fit/langid/internal/logging"
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Second, "Database ping timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	files, err := corpus.Discover(cfg.CorpusDir)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.CorpusDir).Msg("corpus directory check failed")
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		return 1
	}
	if len(files) == 0 && cfg.RequireCorpora {
		fmt.Fprintf(os.Stderr, "Health check failed: no corpus files under %s\n", cfg.CorpusDir)
		return 1
	}
	fmt.Printf("ok: %d corpus files under %s\n", len(files), cfg.CorpusDir)

	if !cfg.LedgerEnabled() {
		fmt.Println("ok: detection ledger disabled")
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("health check failed")
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		return 1
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("ledger ping failed")
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		return 1
	}

	logger.Info().
		Dur("timeout", *timeout).
		Msg("ledger database health check passed")
	fmt.Println("ok: database ping successful")
	return 0
}
