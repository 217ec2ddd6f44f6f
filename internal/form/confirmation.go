package form

import (
	"context"
	"sync/atomic"
)

// Confirmation is the acknowledgment shown after a successful commit.
type Confirmation struct {
	Title   string
	Message string
	Dismiss string
}

// EmployeeCreated is the fixed acknowledgment for a committed employee.
var EmployeeCreated = Confirmation{
	Title:   "Employee creation",
	Message: "Employee created with success!",
	Dismiss: "Close",
}

// Notifier is told that a commit happened. It holds no draft state and
// cannot affect the store. Notify runs inside Controller.Submit and must not
// call back into the controller.
type Notifier interface {
	Notify(ctx context.Context, c Confirmation)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, c Confirmation)

func (f NotifierFunc) Notify(ctx context.Context, c Confirmation) { f(ctx, c) }

// ConfirmationSignal latches a notification until the UI renders it.
type ConfirmationSignal struct {
	pending atomic.Bool
}

func (s *ConfirmationSignal) Notify(_ context.Context, _ Confirmation) {
	s.pending.Store(true)
}

// Take reports whether a confirmation is pending and clears it.
func (s *ConfirmationSignal) Take() bool {
	return s.pending.Swap(false)
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(ctx context.Context, c Confirmation) {
	for _, n := range m {
		n.Notify(ctx, c)
	}
}

// Notifiers fans a confirmation out to every non-nil notifier.
func Notifiers(ns ...Notifier) Notifier {
	var out multiNotifier
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
