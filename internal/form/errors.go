package form

import "strings"

// ValidationFailure is the only error kind the form produces. It is always
// recoverable: the controller keeps the draft and returns to editing.
type ValidationFailure struct {
	Fields FieldSet
}

func (e *ValidationFailure) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Sorted() {
		names = append(names, string(f))
	}
	return "employee form invalid: " + strings.Join(names, ", ")
}
