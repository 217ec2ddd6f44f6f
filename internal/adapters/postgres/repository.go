// Package postgres stores committed employees in PostgreSQL through a pgx
// connection pool.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/csg33k/hrnet/db"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/ports"
)

// Repository manages employee persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// Connect establishes a pool and verifies it with a ping.
func Connect(ctx context.Context, dsn string, logger *zap.Logger) (*Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnIdleTime = 30 * time.Second
	poolCfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("connected to postgres")
	return &Repository{pool: pool}, nil
}

// Migrate applies the embedded dbmate migrations.
func (r *Repository) Migrate(ctx context.Context) error {
	return db.Up(ctx, func(ctx context.Context, script string) error {
		_, err := r.pool.Exec(ctx, script)
		return err
	})
}

// Close releases pool resources.
func (r *Repository) Close() {
	if r != nil && r.pool != nil {
		r.pool.Close()
	}
}

func (r *Repository) InsertEmployee(ctx context.Context, e *domain.Employee) error {
	const query = `
        INSERT INTO employees (
            id, first_name, last_name, date_of_birth, start_date,
            department, street, city, state, zip_code, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.FirstName,
		e.LastName,
		e.DateOfBirth,
		e.StartDate,
		e.Department,
		e.Street,
		e.City,
		e.State,
		e.ZipCode,
		e.CreatedAt,
	)
	return err
}

func (r *Repository) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	const query = `
        SELECT id, first_name, last_name, date_of_birth, start_date,
               department, street, city, state, zip_code, created_at
        FROM employees WHERE id=$1`
	var e domain.Employee
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.DateOfBirth,
		&e.StartDate,
		&e.Department,
		&e.Street,
		&e.City,
		&e.State,
		&e.ZipCode,
		&e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
