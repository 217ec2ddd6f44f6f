package ports

import (
	"context"
	"errors"

	"github.com/csg33k/hrnet/internal/domain"
)

// EmployeeCreator is the application store's record-creation entry point.
// Implementations take ownership of the record and must not block the caller
// on persistence; failures are the implementation's to handle.
type EmployeeCreator interface {
	CreateEmployee(ctx context.Context, record domain.EmployeeDraft)
}

// EmployeeRepository defines persistence operations behind the store.
type EmployeeRepository interface {
	InsertEmployee(ctx context.Context, e *domain.Employee) error
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
}

// StateLookup answers membership queries against the region reference list.
type StateLookup interface {
	Contains(abbreviation string) bool
}

// ErrEmployeeNotFound is returned by repositories for unknown IDs.
var ErrEmployeeNotFound = errors.New("employee not found")
