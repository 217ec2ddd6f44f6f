package templates_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/csg33k/hrnet/internal/dates"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/form"
	"github.com/csg33k/hrnet/internal/reference"
	"github.com/csg33k/hrnet/internal/templates"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestNewFormView_GroupsAddress(t *testing.T) {
	v := templates.NewFormView("HRnet", domain.EmployeeDraft{}, form.Result{}, reference.States().All(), nil)
	if len(v.Fieldsets) != 3 {
		t.Fatalf("fieldsets = %d, want 3", len(v.Fieldsets))
	}
	addr := v.Fieldsets[1]
	if addr.Legend != "Address" || len(addr.Controls) != 4 {
		t.Fatalf("address fieldset = %+v", addr)
	}
	if v.Fieldsets[2].Controls[0].Field != domain.FieldDepartment {
		t.Fatalf("last fieldset = %+v", v.Fieldsets[2])
	}
}

func TestNewControlView_Kinds(t *testing.T) {
	states := reference.States().All()

	date := templates.NewControlView(domain.FieldDateOfBirth, "01-02-1990", false, states)
	if date.Kind != templates.KindDate || date.Value != "1990-01-02" || date.Placeholder != dates.DisplayPlaceholder {
		t.Fatalf("date control = %+v", date)
	}

	dept := templates.NewControlView(domain.FieldDepartment, "Legal", true, states)
	if dept.Kind != templates.KindSelect || dept.Placeholder != "Choose your department" {
		t.Fatalf("department control = %+v", dept)
	}
	if dept.Message != "Please choose a department." {
		t.Fatalf("message = %q", dept.Message)
	}
	selected := 0
	for _, o := range dept.Options {
		if o.Selected {
			selected++
			if o.Value != "Legal" {
				t.Fatalf("selected %q", o.Value)
			}
		}
	}
	if selected != 1 || len(dept.Options) != len(domain.Departments) {
		t.Fatalf("options = %+v", dept.Options)
	}

	state := templates.NewControlView(domain.FieldState, "", false, states)
	if len(state.Options) != len(states) || state.Options[0].Value != states[0].Abbreviation {
		t.Fatalf("state options = %+v", state.Options[:1])
	}
}

func TestPage_Renders(t *testing.T) {
	v := templates.NewFormView("HRnet", domain.EmployeeDraft{}, form.Result{}, reference.States().All(), nil)
	html := renderString(t, templates.Page(v))
	for _, want := range []string{
		"<title>HRnet · Create Employee</title>",
		"Create Employee",
		"<legend>Address</legend>",
		`placeholder="month/day/year"`,
		"Choose your state",
		"novalidate",
		`<div id="confirmation"></div>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "invalid-feedback") {
		t.Error("fresh form shows invalid feedback")
	}
}

func TestForm_AnnotationsAndConfirmation(t *testing.T) {
	res := form.Result{Failures: form.NewFieldSet(domain.FieldZipCode)}
	c := form.EmployeeCreated
	v := templates.NewFormView("HRnet", domain.EmployeeDraft{ZipCode: "1a234"}, res, reference.States().All(), &c)
	html := renderString(t, templates.Form(v))
	if !strings.Contains(html, "Please choose a zip code.") {
		t.Error("zip feedback missing")
	}
	if strings.Count(html, "invalid-feedback") != 1 {
		t.Error("feedback shown for valid fields")
	}
	for _, want := range []string{"Employee creation", "Employee created with success!", ">Close</button>"} {
		if !strings.Contains(html, want) {
			t.Errorf("confirmation missing %q", want)
		}
	}
}

func TestControl_EscapesValues(t *testing.T) {
	c := templates.NewControlView(domain.FieldCity, `"><script>x</script>`, false, nil)
	html := renderString(t, templates.Control(c))
	if strings.Contains(html, "<script>") {
		t.Fatalf("unescaped value: %s", html)
	}
}
