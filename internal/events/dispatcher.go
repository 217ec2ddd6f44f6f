package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// EmployeeCreatedHandler receives employee_created events with their payload
// already unpacked.
type EmployeeCreatedHandler func(context.Context, Event, EmployeeCreatedPayload) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

var (
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrUnexpectedPayload = errors.New("unexpected event payload")
)

// OnEmployeeCreated subscribes fn to employee_created events. An event whose
// payload is not an EmployeeCreatedPayload is reported as a handler error.
func OnEmployeeCreated(d Dispatcher, fn EmployeeCreatedHandler) {
	d.Subscribe(EventEmployeeCreated, func(ctx context.Context, e Event) error {
		p, ok := e.Payload.(EmployeeCreatedPayload)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrUnexpectedPayload, e.Payload, e.Type)
		}
		return fn(ctx, e, p)
	})
}

// syncDispatcher runs subscribers on the publisher's goroutine, in
// subscription order.
type syncDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	logger    *zap.Logger
}

// NewInMemoryDispatcher creates a dispatcher instance. Handler errors are
// logged and do not stop later handlers.
func NewInMemoryDispatcher(logger *zap.Logger) Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &syncDispatcher{
		listeners: make(map[EventType][]EventHandler),
		logger:    logger,
	}
}

// Publish delivers event to its subscribers. Only the event types this
// package defines are accepted.
func (d *syncDispatcher) Publish(ctx context.Context, event Event) error {
	if !event.Type.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}
	d.mu.RLock()
	listeners := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handle := range listeners {
		if err := handle(ctx, event); err != nil {
			d.logger.Warn("event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (d *syncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
