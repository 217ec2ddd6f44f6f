// Command hrnet-cli fills the create-employee form from the terminal and
// commits into the same store the server uses.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/csg33k/hrnet/internal/adapters"
	"github.com/csg33k/hrnet/internal/config"
	"github.com/csg33k/hrnet/internal/form"
	"github.com/csg33k/hrnet/internal/observability"
	"github.com/csg33k/hrnet/internal/prompt"
	"github.com/csg33k/hrnet/internal/reference"
	"github.com/csg33k/hrnet/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// prompts own stdout; keep the log quiet unless asked
	if cfg.Logger.Level == "info" {
		cfg.Logger.Level = "warn"
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := adapters.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal("open repository", zap.Error(err))
	}
	defer closeRepo()

	appStore := store.New(repo, cfg.Store.QueueSize, store.WithLogger(logger.Named("store")))
	go appStore.Run(context.Background())

	states := reference.States()
	runner := prompt.NewRunner(prompt.NewSurveyDriver(), appStore, states, states.All(),
		form.WithLogger(logger.Named("form")),
	)
	runErr := runner.Run(ctx)

	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := appStore.Close(drainCtx); err != nil {
		logger.Warn("store drain", zap.Error(err))
	}
	if runErr != nil && !errors.Is(runErr, prompt.ErrAborted) && !errors.Is(runErr, context.Canceled) {
		logger.Fatal("terminal form", zap.Error(runErr))
	}
}
