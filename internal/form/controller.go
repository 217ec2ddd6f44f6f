// Package form owns the create-employee form: the in-progress draft, the
// field rules and the submit state machine that hands a valid record to the
// application store.
package form

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/csg33k/hrnet/internal/dates"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/ports"
)

// State is the controller's position in the submit cycle.
type State int

const (
	Editing State = iota
	Validating
	Committing
	Confirmed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Committing:
		return "committing"
	case Confirmed:
		return "confirmed"
	}
	return "unknown"
}

var ErrNotDateField = errors.New("field does not hold a date")

// Recorder receives submit outcomes for metrics.
type Recorder interface {
	ValidationFailed(fields []domain.Field)
	Committed()
}

// TransitionFunc observes every state the controller enters during Submit.
// It runs under the controller lock and must not call back into it.
type TransitionFunc func(State)

// Outcome describes what a Submit call did.
type Outcome struct {
	Committed bool
	Result    Result
}

// Snapshot is the persistable part of a form session.
type Snapshot struct {
	Draft     domain.EmployeeDraft `json:"draft"`
	Validated bool                 `json:"validated"`
}

// Controller holds one form session's draft. All methods are safe for
// concurrent use; Submit runs its whole cycle under the lock.
type Controller struct {
	mu sync.Mutex

	store    ports.EmployeeCreator
	states   ports.StateLookup
	notifier Notifier
	recorder Recorder
	logger   *zap.Logger
	observe  TransitionFunc

	draft     domain.EmployeeDraft
	validated bool
	state     State
}

// Option configures a Controller.
type Option func(*Controller)

func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notifier = n } }

func WithRecorder(r Recorder) Option { return func(c *Controller) { c.recorder = r } }

func WithLogger(l *zap.Logger) Option { return func(c *Controller) { c.logger = l } }

func WithTransitions(fn TransitionFunc) Option { return func(c *Controller) { c.observe = fn } }

// NewController returns a controller with an empty draft in the Editing state.
func NewController(store ports.EmployeeCreator, states ports.StateLookup, opts ...Option) *Controller {
	c := &Controller{store: store, states: states, state: Editing}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Restore replaces the session state, e.g. after loading it from a session
// backend.
func (c *Controller) Restore(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = s.Draft
	c.validated = s.Validated
	c.state = Editing
}

// Snapshot returns the persistable session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Draft: c.draft, Validated: c.validated}
}

// SetField replaces one field and returns the updated draft.
func (c *Controller) SetField(f domain.Field, value string) (domain.EmployeeDraft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.draft.With(f, value)
	if err != nil {
		return c.draft, err
	}
	c.draft = next
	return next, nil
}

// SetDate stores d in a date field in canonical form.
func (c *Controller) SetDate(f domain.Field, d dates.Date) (domain.EmployeeDraft, error) {
	if !f.IsDate() {
		return c.Draft(), ErrNotDateField
	}
	return c.SetField(f, dates.ToCanonical(d))
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() domain.EmployeeDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Validated reports whether a failed submit asked the UI to show annotations.
func (c *Controller) Validated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validated
}

// State returns the current state. Outside of Submit it is always Editing.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Annotations returns the failures the UI should mark. It is empty until a
// submit has failed, and tracks the live draft afterwards so corrected
// fields lose their mark.
func (c *Controller) Annotations() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.validated {
		return Result{Failures: FieldSet{}}
	}
	return Validate(c.draft, c.states)
}

// Submit validates the draft and, when valid, hands it to the store, resets
// the draft and signals the notifier. An invalid draft is left untouched.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enter(Validating)
	res := Validate(c.draft, c.states)
	if !res.Valid() {
		c.validated = true
		c.enter(Editing)
		fields := res.Failures.Sorted()
		c.logger.Debug("employee form rejected", zap.Error(res.Err()))
		if c.recorder != nil {
			c.recorder.ValidationFailed(fields)
		}
		return Outcome{Result: res}
	}

	c.enter(Committing)
	record := c.draft
	c.store.CreateEmployee(ctx, record)
	c.validated = false
	c.draft = domain.EmployeeDraft{}
	if c.recorder != nil {
		c.recorder.Committed()
	}
	c.logger.Info("employee committed",
		zap.String("department", record.Department),
		zap.String("state", record.State),
	)

	c.enter(Confirmed)
	if c.notifier != nil {
		c.notifier.Notify(ctx, EmployeeCreated)
	}
	c.enter(Editing)
	return Outcome{Committed: true, Result: res}
}

// enter moves to s. Callers hold c.mu.
func (c *Controller) enter(s State) {
	c.state = s
	c.logger.Debug("form state", zap.Stringer("state", s))
	if c.observe != nil {
		c.observe(s)
	}
}
