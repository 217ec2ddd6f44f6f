// Package store is the application store the form commits into. Records are
// queued and persisted by a background worker so the form never waits on a
// database.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/events"
	"github.com/csg33k/hrnet/internal/ports"
)

// Store implements ports.EmployeeCreator.
type Store struct {
	repo       ports.EmployeeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan *domain.Employee
	done   chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithDispatcher publishes an EmployeeCreated event after each insert.
func WithDispatcher(d events.Dispatcher) Option { return func(s *Store) { s.dispatcher = d } }

func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock overrides the CreatedAt source.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// New returns a store with room for queueSize pending records. Call Run to
// start persisting them.
func New(repo ports.EmployeeRepository, queueSize int, opts ...Option) *Store {
	if queueSize <= 0 {
		queueSize = 1
	}
	s := &Store{
		repo:   repo,
		logger: zap.NewNop(),
		now:    time.Now,
		queue:  make(chan *domain.Employee, queueSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEmployee assigns an ID and enqueues the record. It never blocks: when
// the queue is full or the store is closed the record is dropped and logged.
func (s *Store) CreateEmployee(_ context.Context, record domain.EmployeeDraft) {
	e := &domain.Employee{
		ID:            uuid.NewString(),
		EmployeeDraft: record,
		CreatedAt:     s.now().UTC(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.logger.Error("employee dropped: store closed", zap.String("employee_id", e.ID))
		return
	}
	select {
	case s.queue <- e:
	default:
		s.logger.Error("employee dropped: queue full",
			zap.String("employee_id", e.ID),
			zap.Int("capacity", cap(s.queue)),
		)
	}
}

// Run persists queued records until the queue is closed and drained or ctx
// is cancelled.
func (s *Store) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-s.queue:
			if !ok {
				return
			}
			s.persist(ctx, e)
		}
	}
}

func (s *Store) persist(ctx context.Context, e *domain.Employee) {
	if err := s.repo.InsertEmployee(ctx, e); err != nil {
		s.logger.Error("persist employee", zap.String("employee_id", e.ID), zap.Error(err))
		return
	}
	s.logger.Info("employee persisted",
		zap.String("employee_id", e.ID),
		zap.String("department", e.Department),
	)
	if s.dispatcher != nil {
		if err := s.dispatcher.Publish(ctx, events.EmployeeCreated(e)); err != nil {
			s.logger.Warn("publish employee_created", zap.String("employee_id", e.ID), zap.Error(err))
		}
	}
}

// Close stops accepting records and waits for Run to drain the queue or for
// ctx to expire.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
