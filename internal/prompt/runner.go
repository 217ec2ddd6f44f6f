// Package prompt fills the create-employee form from a terminal.
package prompt

import (
	"context"
	"fmt"
	"time"

	"github.com/csg33k/hrnet/internal/dates"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/form"
	"github.com/csg33k/hrnet/internal/ports"
)

const statePageSize = 12

// Runner asks for each field, submits, and asks again only for the fields
// that failed until the employee is committed.
type Runner struct {
	driver     Driver
	controller *form.Controller
	signal     *form.ConfirmationSignal
	states     []domain.State
	now        func() time.Time
}

// NewRunner builds a runner with its own controller. opts are passed to the
// controller after the runner's notifier.
func NewRunner(driver Driver, store ports.EmployeeCreator, states ports.StateLookup, stateList []domain.State, opts ...form.Option) *Runner {
	sig := &form.ConfirmationSignal{}
	all := append([]form.Option{form.WithNotifier(sig)}, opts...)
	return &Runner{
		driver:     driver,
		controller: form.NewController(store, states, all...),
		signal:     sig,
		states:     stateList,
		now:        time.Now,
	}
}

// WithClock sets the clock behind the TODAY default of date prompts.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run creates employees until the user declines another.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := r.CreateOne(ctx); err != nil {
			return err
		}
		again, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Create another employee?"})
		if err != nil || !again {
			return err
		}
	}
}

// CreateOne runs the form until one employee is committed.
func (r *Runner) CreateOne(ctx context.Context) error {
	fields := form.FieldOrder
	for {
		for _, f := range fields {
			if err := r.ask(ctx, f); err != nil {
				return err
			}
		}
		out := r.controller.Submit(ctx)
		if out.Committed {
			if r.signal.Take() {
				c := form.EmployeeCreated
				return r.driver.Info(ctx, fmt.Sprintf("%s: %s", c.Title, c.Message))
			}
			return nil
		}
		if first, ok := out.Result.First(); ok {
			if err := r.driver.Info(ctx, form.Message(first)); err != nil {
				return err
			}
		}
		fields = out.Result.Failures.Sorted()
	}
}

func (r *Runner) ask(ctx context.Context, f domain.Field) error {
	current := r.controller.Draft().Get(f)
	switch {
	case f.IsDate():
		return r.askDate(ctx, f, current)
	case f == domain.FieldDepartment:
		return r.askDepartment(ctx, current)
	case f == domain.FieldState:
		return r.askState(ctx, current)
	}
	v, err := r.driver.Input(ctx, InputConfig{Message: f.Label(), Default: current})
	if err != nil {
		return err
	}
	_, err = r.controller.SetField(f, v)
	return err
}

// askDate reads MM/dd/yyyy, defaulting to today when the field is empty. An
// entry that does not parse clears the field so the submit rejects it.
func (r *Runner) askDate(ctx context.Context, f domain.Field, current string) error {
	def := dates.Today(r.now).Display()
	if d, ok := dates.FromCanonical(current); ok {
		def = d.Display()
	}
	v, err := r.driver.Input(ctx, InputConfig{
		Message: f.Label(),
		Default: def,
		Help:    dates.DisplayPlaceholder,
	})
	if err != nil {
		return err
	}
	if d, ok := dates.FromDisplay(v); ok {
		_, err = r.controller.SetDate(f, d)
		return err
	}
	_, err = r.controller.SetField(f, "")
	return err
}

// Select prompts lead with the placeholder; choosing it leaves the field
// empty.
func (r *Runner) askDepartment(ctx context.Context, current string) error {
	options := append([]string{form.Placeholder(domain.FieldDepartment)}, domain.Departments...)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      domain.FieldDepartment.Label(),
		Options:      options,
		DefaultIndex: indexOf(options, current),
	})
	if err != nil {
		return err
	}
	v := ""
	if idx > 0 && idx < len(options) {
		v = options[idx]
	}
	_, err = r.controller.SetField(domain.FieldDepartment, v)
	return err
}

func (r *Runner) askState(ctx context.Context, current string) error {
	options := []string{form.Placeholder(domain.FieldState)}
	def := 0
	for i, s := range r.states {
		options = append(options, s.Name)
		if s.Abbreviation == current {
			def = i + 1
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      domain.FieldState.Label(),
		Options:      options,
		DefaultIndex: def,
		PageSize:     statePageSize,
	})
	if err != nil {
		return err
	}
	v := ""
	if idx > 0 && idx <= len(r.states) {
		v = r.states[idx-1].Abbreviation
	}
	_, err = r.controller.SetField(domain.FieldState, v)
	return err
}

func indexOf(options []string, value string) int {
	if value == "" {
		return 0
	}
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return 0
}
