// Package adapters selects the employee repository named by configuration.
package adapters

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/csg33k/hrnet/internal/adapters/postgres"
	sqliteadapter "github.com/csg33k/hrnet/internal/adapters/sqlite"
	"github.com/csg33k/hrnet/internal/config"
	"github.com/csg33k/hrnet/internal/ports"
	"github.com/csg33k/hrnet/internal/store"
)

// Open connects and migrates the configured repository. The returned func
// releases it.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (ports.EmployeeRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		repo, err := postgres.Connect(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return repo, repo.Close, nil
	case config.DriverMemory:
		return store.NewMemory(), func() {}, nil
	case config.DriverSQLite:
		repo, err := sqliteadapter.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		logger.Info("database ready", zap.String("path", cfg.SQLitePath))
		return repo, func() { repo.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
}
