package sqlite

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/hrnet/db"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/ports"
)

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database. Schema migrations are managed by dbmate;
// run `dbmate up` before starting the server, or call Migrate.
func New(dsn string) (*Repository, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// one writer; also keeps ":memory:" databases on a single connection
	conn.SetMaxOpenConns(1)
	return &Repository{db: conn}, nil
}

// Migrate applies the embedded dbmate migrations.
func (r *Repository) Migrate(ctx context.Context) error {
	return db.Up(ctx, func(ctx context.Context, script string) error {
		_, err := r.db.ExecContext(ctx, script)
		return err
	})
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) InsertEmployee(ctx context.Context, e *domain.Employee) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (
			id, first_name, last_name, date_of_birth, start_date,
			department, street, city, state, zip_code, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.FirstName, e.LastName, e.DateOfBirth, e.StartDate,
		e.Department, e.Street, e.City, e.State, e.ZipCode, e.CreatedAt,
	)
	return err
}

func (r *Repository) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, date_of_birth, start_date,
		       department, street, city, state, zip_code, created_at
		FROM employees WHERE id=?`, id).Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.DateOfBirth, &e.StartDate,
		&e.Department, &e.Street, &e.City, &e.State, &e.ZipCode, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
