package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/events"
)

func sampleEmployee() *domain.Employee {
	return &domain.Employee{
		ID: "emp-1",
		EmployeeDraft: domain.EmployeeDraft{
			FirstName:  "Jane",
			Department: "Engineering",
			State:      "IL",
			StartDate:  "03-04-2020",
		},
		CreatedAt: time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_DeliversToSubscribersInOrder(t *testing.T) {
	d := events.NewInMemoryDispatcher(nil)
	var got []string
	d.Subscribe(events.EventEmployeeCreated, func(_ context.Context, e events.Event) error {
		got = append(got, "first:"+e.EmployeeID)
		return errors.New("ignored")
	})
	d.Subscribe(events.EventEmployeeCreated, func(_ context.Context, e events.Event) error {
		got = append(got, "second:"+e.EmployeeID)
		return nil
	})
	d.Subscribe("other", func(context.Context, events.Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	if err := d.Publish(context.Background(), events.EmployeeCreated(sampleEmployee())); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "first:emp-1" || got[1] != "second:emp-1" {
		t.Fatalf("deliveries = %v", got)
	}
}

func TestDispatcher_RejectsUnknownType(t *testing.T) {
	d := events.NewInMemoryDispatcher(nil)
	err := d.Publish(context.Background(), events.Event{Type: "employee_deleted"})
	if !errors.Is(err, events.ErrUnknownEventType) {
		t.Fatalf("err = %v", err)
	}
}

func TestOnEmployeeCreated_UnpacksPayload(t *testing.T) {
	d := events.NewInMemoryDispatcher(nil)
	var got []events.EmployeeCreatedPayload
	events.OnEmployeeCreated(d, func(_ context.Context, e events.Event, p events.EmployeeCreatedPayload) error {
		if e.EmployeeID != "emp-1" {
			t.Errorf("employee id = %q", e.EmployeeID)
		}
		got = append(got, p)
		return nil
	})
	if err := d.Publish(context.Background(), events.EmployeeCreated(sampleEmployee())); err != nil {
		t.Fatal(err)
	}
	want := []events.EmployeeCreatedPayload{{Department: "Engineering", State: "IL", StartDate: "03-04-2020"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payloads (-want +got):\n%s", diff)
	}
}

func TestOnEmployeeCreated_WrongPayloadSkipsHandler(t *testing.T) {
	d := events.NewInMemoryDispatcher(nil)
	called := false
	events.OnEmployeeCreated(d, func(context.Context, events.Event, events.EmployeeCreatedPayload) error {
		called = true
		return nil
	})
	e := events.Event{ID: "x", Type: events.EventEmployeeCreated, Payload: map[string]any{"department": "Sales"}}
	if err := d.Publish(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Fatal("typed handler ran for a foreign payload")
	}
}

func TestEmployeeCreated_Payload(t *testing.T) {
	e := events.EmployeeCreated(sampleEmployee())
	if e.ID == "" || e.Type != events.EventEmployeeCreated {
		t.Fatalf("event = %+v", e)
	}
	p, ok := e.Payload.(events.EmployeeCreatedPayload)
	if !ok || p.Department != "Engineering" || p.State != "IL" || p.StartDate != "03-04-2020" {
		t.Fatalf("payload = %#v", e.Payload)
	}
}

// Needs a reachable Redis; set HRNET_TEST_REDIS_ADDR to run.
func TestRedisPublisher(t *testing.T) {
	addr := os.Getenv("HRNET_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HRNET_TEST_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	sub := client.Subscribe(ctx, "hrnet-test-events")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatal(err)
	}

	pub := events.NewRedisPublisher(client, "hrnet-test-events")
	if err := pub.Handle(ctx, events.EmployeeCreated(sampleEmployee())); err != nil {
		t.Fatal(err)
	}
	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got events.Event
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatal(err)
	}
	if got.EmployeeID != "emp-1" || got.Type != events.EventEmployeeCreated {
		t.Fatalf("event = %+v", got)
	}
}
