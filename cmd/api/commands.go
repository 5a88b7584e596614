package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/config"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/database"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "parkmoveis-api",
		Short:         "Back office API for sales and installment plans",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if err := logger.Setup(logger.LogConfig{
				Level:      cfg.Log.Level,
				Format:     cfg.Log.Format,
				TimeFormat: time.RFC3339,
				Output:     cfg.Log.Output,
			}); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			return cfg.Installment.Validate()
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cfg)
		},
	}
	prune := &cobra.Command{
		Use:   "prune-idempotency",
		Short: "Delete expired idempotency keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd.Context(), cfg)
		},
	}

	root.AddCommand(serve, migrate, prune)
	// no subcommand means serve
	root.RunE = serve.RunE

	return root
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.WithComponent("server")

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	app, err := newApp(cfg, db)
	if err != nil {
		return err
	}
	defer app.Close()

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.pruneLoop(ctx, time.Hour)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", port).
			Str("env", cfg.App.Env).
			Str("db_driver", cfg.Database.Driver).
			Msgf("starting %s", cfg.App.Name)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMigrate(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log := logger.WithComponent("migrate")
	log.Info().Str("db_driver", cfg.Database.Driver).Msg("schema is up to date")
	return nil
}

func runPrune(ctx context.Context, cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close(db)

	if ctx == nil {
		ctx = context.Background()
	}
	n, err := repository.NewIdempotencyRepository(db).DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("prune idempotency keys: %w", err)
	}
	log := logger.WithComponent("prune")
	log.Info().Int64("deleted", n).Msg("expired idempotency keys removed")
	return nil
}
