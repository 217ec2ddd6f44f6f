package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/ports"
)

// Memory is an in-process EmployeeRepository.
type Memory struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Employee
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[string]domain.Employee)}
}

func (m *Memory) InsertEmployee(_ context.Context, e *domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[e.ID]; ok {
		return fmt.Errorf("employee %s already exists", e.ID)
	}
	m.byID[e.ID] = *e
	m.order = append(m.order, e.ID)
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id string) (*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byID[id]
	if !ok {
		return nil, ports.ErrEmployeeNotFound
	}
	return &e, nil
}

// All returns the stored employees in insertion order.
func (m *Memory) All() []domain.Employee {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Employee, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}
