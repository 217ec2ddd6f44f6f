package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/csg33k/hrnet/internal/adapters"
	"github.com/csg33k/hrnet/internal/config"
	"github.com/csg33k/hrnet/internal/events"
	"github.com/csg33k/hrnet/internal/form"
	"github.com/csg33k/hrnet/internal/handlers"
	"github.com/csg33k/hrnet/internal/observability"
	"github.com/csg33k/hrnet/internal/reference"
	"github.com/csg33k/hrnet/internal/session"
	"github.com/csg33k/hrnet/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	repo, closeRepo, err := adapters.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	var rdb *redis.Client
	if cfg.Session.Backend == config.BackendRedis || cfg.Events.RedisChannel != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	events.OnEmployeeCreated(dispatcher, func(_ context.Context, e events.Event, p events.EmployeeCreatedPayload) error {
		metrics.Hired(p.Department)
		logger.Info("employee persisted",
			zap.String("employee_id", e.EmployeeID),
			zap.String("department", p.Department),
			zap.String("state", p.State),
		)
		return nil
	})
	if cfg.Events.RedisChannel != "" {
		pub := events.NewRedisPublisher(rdb, cfg.Events.RedisChannel)
		dispatcher.Subscribe(events.EventEmployeeCreated, pub.Handle)
		logger.Info("publishing employee events", zap.String("channel", cfg.Events.RedisChannel))
	}

	appStore := store.New(repo, cfg.Store.QueueSize,
		store.WithDispatcher(dispatcher),
		store.WithLogger(logger.Named("store")),
	)
	storeCtx, stopStore := context.WithCancel(context.Background())
	defer stopStore()
	go appStore.Run(storeCtx)

	var backend session.Backend
	switch cfg.Session.Backend {
	case config.BackendRedis:
		backend = session.NewRedisBackend(rdb, cfg.Session.TTL())
	default:
		mem := session.NewMemoryBackend(cfg.Session.TTL())
		go sweepSessions(ctx, mem, logger)
		backend = mem
	}

	states := reference.States()
	sessions := session.NewManager(backend, appStore, states,
		form.WithRecorder(metrics),
		form.WithLogger(logger.Named("form")),
	)
	h := handlers.New(sessions, repo, states.All(), metrics, logger, handlers.Config{
		AppName:    cfg.App.Name,
		CookieName: cfg.Session.CookieName,
		SessionTTL: cfg.Session.TTL(),
	})

	var routes http.Handler = h.Routes()
	routes = observability.Timeout(cfg.App.RequestTimeout())(routes)
	routes = observability.RequestLogger(logger, metrics)(routes)

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           routes,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HRnet running",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Driver),
			zap.String("sessions", cfg.Session.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := appStore.Close(shutdownCtx); err != nil {
		logger.Warn("store drain", zap.Error(err))
	}
	logger.Info("shutdown complete")
	return nil
}

func sweepSessions(ctx context.Context, mem *session.MemoryBackend, logger *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mem.Sweep(); n > 0 {
				logger.Debug("expired form sessions removed", zap.Int("count", n))
			}
		}
	}
}
