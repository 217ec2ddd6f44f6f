// Package session keeps each browser's in-progress employee draft between
// requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/csg33k/hrnet/internal/form"
	"github.com/csg33k/hrnet/internal/ports"
)

var ErrInvalidID = errors.New("invalid session id")

// Backend stores form snapshots by session ID.
type Backend interface {
	Load(ctx context.Context, id string) (form.Snapshot, bool, error)
	Save(ctx context.Context, id string, s form.Snapshot) error
}

// Manager builds a controller per request from the stored snapshot. Calls
// for the same ID are serialized.
type Manager struct {
	backend Backend
	store   ports.EmployeeCreator
	states  ports.StateLookup
	opts    []form.Option

	mu    sync.Mutex
	locks map[string]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager returns a manager. opts apply to every controller it builds.
func NewManager(backend Backend, store ports.EmployeeCreator, states ports.StateLookup, opts ...form.Option) *Manager {
	return &Manager{
		backend: backend,
		store:   store,
		states:  states,
		opts:    opts,
		locks:   make(map[string]*idLock),
	}
}

// NewID returns a fresh session ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Do runs fn against the session's controller and saves the result. A
// session that does not exist yet starts with an empty draft. extra options
// are appended to the manager's for this call only.
func (m *Manager) Do(ctx context.Context, id string, fn func(*form.Controller) error, extra ...form.Option) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	unlock := m.lock(id)
	defer unlock()

	snap, _, err := m.backend.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	opts := append(append([]form.Option{}, m.opts...), extra...)
	c := form.NewController(m.store, m.states, opts...)
	c.Restore(snap)

	fnErr := fn(c)
	if err := m.backend.Save(ctx, id, c.Snapshot()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return fnErr
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &idLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
