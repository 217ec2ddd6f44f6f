package templates

import (
	"github.com/csg33k/hrnet/internal/dates"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/form"
)

// Control kinds.
const (
	KindText   = "text"
	KindDate   = "date"
	KindSelect = "select"
)

// Option is one entry of a dropdown.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ControlView is everything needed to render one labelled input.
type ControlView struct {
	Field       domain.Field
	ID          string
	Name        string
	Label       string
	Kind        string
	Value       string
	Placeholder string
	Options     []Option
	Invalid     bool
	Message     string
}

// FieldsetView groups controls under an optional legend.
type FieldsetView struct {
	Legend   string
	Controls []ControlView
}

// FormView is the create-employee form as the page shows it.
type FormView struct {
	AppName      string
	Fieldsets    []FieldsetView
	Confirmation *form.Confirmation
}

var addressFields = map[domain.Field]bool{
	domain.FieldStreet:  true,
	domain.FieldCity:    true,
	domain.FieldState:   true,
	domain.FieldZipCode: true,
}

// NewFormView lays out draft in field order, wrapping the address fields in
// their own fieldset. Controls listed in annotations are marked invalid.
func NewFormView(appName string, draft domain.EmployeeDraft, annotations form.Result, states []domain.State, confirmation *form.Confirmation) FormView {
	v := FormView{AppName: appName, Confirmation: confirmation}
	var current *FieldsetView
	for _, f := range form.FieldOrder {
		legend := ""
		if addressFields[f] {
			legend = "Address"
		}
		if current == nil || current.Legend != legend {
			v.Fieldsets = append(v.Fieldsets, FieldsetView{Legend: legend})
			current = &v.Fieldsets[len(v.Fieldsets)-1]
		}
		current.Controls = append(current.Controls, NewControlView(f, draft.Get(f), annotations.Failed(f), states))
	}
	return v
}

// NewControlView renders one field. value is the stored string; date fields
// are shown through the picker format.
func NewControlView(f domain.Field, value string, invalid bool, states []domain.State) ControlView {
	c := ControlView{
		Field:   f,
		ID:      controlID(f),
		Name:    inputName(f),
		Label:   f.Label(),
		Kind:    KindText,
		Value:   value,
		Invalid: invalid,
	}
	if invalid {
		c.Message = form.Message(f)
	}
	switch {
	case f.IsDate():
		c.Kind = KindDate
		c.Placeholder = dates.DisplayPlaceholder
		c.Value = dates.CanonicalToPicker(value)
	case f == domain.FieldDepartment:
		c.Kind = KindSelect
		c.Placeholder = form.Placeholder(f)
		for _, d := range domain.Departments {
			c.Options = append(c.Options, Option{Value: d, Label: d, Selected: d == value})
		}
	case f == domain.FieldState:
		c.Kind = KindSelect
		c.Placeholder = form.Placeholder(f)
		for _, s := range states {
			c.Options = append(c.Options, Option{Value: s.Abbreviation, Label: s.Name, Selected: s.Abbreviation == value})
		}
	}
	return c
}
