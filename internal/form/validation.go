package form

import (
	"context"
	"strings"

	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/ports"
)

// FieldOrder decides which failure surfaces first when the UI shows one
// message at a time. It differs from record order: address fields come
// before department, matching the page layout.
var FieldOrder = []domain.Field{
	domain.FieldFirstName,
	domain.FieldLastName,
	domain.FieldDateOfBirth,
	domain.FieldStartDate,
	domain.FieldStreet,
	domain.FieldCity,
	domain.FieldState,
	domain.FieldZipCode,
	domain.FieldDepartment,
}

// FieldSet is a set of field names.
type FieldSet map[domain.Field]struct{}

// NewFieldSet builds a set from fs.
func NewFieldSet(fs ...domain.Field) FieldSet {
	s := make(FieldSet, len(fs))
	for _, f := range fs {
		s[f] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s FieldSet) Has(f domain.Field) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the members in FieldOrder.
func (s FieldSet) Sorted() []domain.Field {
	out := make([]domain.Field, 0, len(s))
	for _, f := range FieldOrder {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Result is the outcome of evaluating every field rule against a draft.
type Result struct {
	Failures FieldSet
}

// Valid is true iff no field failed.
func (r Result) Valid() bool { return len(r.Failures) == 0 }

// Failed reports whether f failed.
func (r Result) Failed(f domain.Field) bool { return r.Failures.Has(f) }

// First returns the first failing field in FieldOrder.
func (r Result) First() (domain.Field, bool) {
	for _, f := range FieldOrder {
		if r.Failures.Has(f) {
			return f, true
		}
	}
	return "", false
}

// Err returns the result as a *ValidationFailure, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationFailure{Fields: r.Failures}
}

// Message is the static annotation shown under a failing control.
func Message(f domain.Field) string {
	return "Please choose a " + strings.ToLower(f.Label()) + "."
}

// Placeholder is the empty option text of a dropdown control.
func Placeholder(f domain.Field) string {
	return "Choose your " + strings.ToLower(f.Label())
}

// Validate evaluates every field rule independently; one field's failure
// never hides another's.
func Validate(d domain.EmployeeDraft, states ports.StateLookup) Result {
	ctx := context.WithValue(context.Background(), statesKey{}, states)
	if err := engine().StructCtx(ctx, d); err != nil {
		return Result{Failures: failedFields(err)}
	}
	return Result{Failures: FieldSet{}}
}
