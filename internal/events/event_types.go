package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/csg33k/hrnet/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated EventType = "employee_created"
)

// Known reports whether t is one of the event types above.
func (t EventType) Known() bool {
	return t == EventEmployeeCreated
}

// Event represents a domain event emitted by the application store.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID string      `json:"employee_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	Department string `json:"department"`
	State      string `json:"state"`
	StartDate  string `json:"start_date"`
}

// EmployeeCreated builds the event for a persisted employee.
func EmployeeCreated(e *domain.Employee) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventEmployeeCreated,
		EmployeeID: e.ID,
		OccurredAt: e.CreatedAt,
		Payload: EmployeeCreatedPayload{
			Department: e.Department,
			State:      e.State,
			StartDate:  e.StartDate,
		},
	}
}
