package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"horse.fit/langid/internal/auth"
	"horse.fit/langid/internal/cli"
	"horse.fit/langid/internal/config"
	"horse.fit/langid/internal/db"
	"horse.fit/langid/internal/httpapi"
	"horse.fit/langid/internal/langdetect"
	"horse.fit/langid/internal/language"
	"horse.fit/langid/internal/logging"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "", "Host interface to bind (overrides HOST)")
	port := fs.Int("port", 0, "HTTP port (overrides PORT)")
	readTimeout := fs.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	shutdownTimeout := fs.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *port < 0 || *port > 65535 {
		fmt.Fprintln(os.Stderr, "--port must be between 1 and 65535")
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
	if trimmed := strings.TrimSpace(*host); trimmed != "" {
		cfg.Host = trimmed
	}
	if *port > 0 {
		cfg.Port = *port
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
	}()

	normalizer := language.Normalizer{CaseFold: cfg.CaseFold}
	models, err := loadModels(ctx, cfg.CorpusDir, cfg.LoaderWorkers, cfg.RequireCorpora, normalizer, logger)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.CorpusDir).Msg("corpus loading failed")
		fmt.Fprintf(os.Stderr, "Failed to load corpora: %v\n", err)
		return 1
	}

	var ledger httpapi.Ledger
	if cfg.LedgerEnabled() {
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := db.NewPool(dbCtx, cfg)
		dbCancel()
		if err != nil {
			logger.Error().Err(err).Msg("serve failed to connect to ledger database")
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			return 1
		}
		defer pool.Close()
		ledger = pool
	}

	srv := httpapi.NewServer(
		langdetect.New(models, normalizer),
		auth.NewKeySet(cfg.APIKeyList()),
		ledger,
		logger,
		httpapi.Options{
			Host:            cfg.Host,
			Port:            cfg.Port,
			ReadTimeout:     *readTimeout,
			WriteTimeout:    *writeTimeout,
			ShutdownTimeout: *shutdownTimeout,
			BodyLimit:       cfg.BodyLimit,
			AllowOrigins:    cfg.CORSAllowedOriginsList(),
		},
	)

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Str("host", cfg.Host).Int("port", cfg.Port).Msg("server failed")
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return 1
	}

	return 0
}
