package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	sqliteadapter "github.com/csg33k/hrnet/internal/adapters/sqlite"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/ports"
)

func newRepo(t *testing.T) *sqliteadapter.Repository {
	t.Helper()
	repo, err := sqliteadapter.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestInsertAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	e := &domain.Employee{
		ID: "6d1c4b2e-0000-4000-8000-000000000001",
		EmployeeDraft: domain.EmployeeDraft{
			FirstName:   "Jane",
			LastName:    "Doe",
			DateOfBirth: "01-02-1990",
			StartDate:   "03-04-2020",
			Department:  "Engineering",
			Street:      "1 Main St",
			City:        "Springfield",
			State:       "IL",
			ZipCode:     "02134",
		},
		CreatedAt: time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC),
	}
	if err := repo.InsertEmployee(ctx, e); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetEmployee(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(e.EmployeeDraft, got.EmployeeDraft); diff != "" {
		t.Fatalf("record (-want +got):\n%s", diff)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("created_at = %s, want %s", got.CreatedAt, e.CreatedAt)
	}
}

func TestInsertDuplicateID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	e := &domain.Employee{ID: "dup", CreatedAt: time.Now()}
	if err := repo.InsertEmployee(ctx, e); err != nil {
		t.Fatal(err)
	}
	if err := repo.InsertEmployee(ctx, e); err == nil {
		t.Fatal("expected primary key violation")
	}
}

func TestGetMissing(t *testing.T) {
	repo := newRepo(t)
	if _, err := repo.GetEmployee(context.Background(), "nope"); !errors.Is(err, ports.ErrEmployeeNotFound) {
		t.Fatalf("err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestMigrateTwice(t *testing.T) {
	repo := newRepo(t)
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
