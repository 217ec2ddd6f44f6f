package domain

import (
	"errors"
	"time"
)

// Field names a single control of the create-employee form. The string value
// is the key used in form posts, session snapshots and JSON.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldDateOfBirth Field = "dateOfBirth"
	FieldStartDate   Field = "startDate"
	FieldDepartment  Field = "department"
	FieldStreet      Field = "street"
	FieldCity        Field = "city"
	FieldState       Field = "state"
	FieldZipCode     Field = "zipCode"
)

// Fields lists every draft field in record order.
var Fields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldDateOfBirth,
	FieldStartDate,
	FieldDepartment,
	FieldStreet,
	FieldCity,
	FieldState,
	FieldZipCode,
}

var labels = map[Field]string{
	FieldFirstName:   "First Name",
	FieldLastName:    "Last Name",
	FieldDateOfBirth: "Date of Birth",
	FieldStartDate:   "Start Date",
	FieldDepartment:  "Department",
	FieldStreet:      "Street",
	FieldCity:        "City",
	FieldState:       "State",
	FieldZipCode:     "Zip Code",
}

// Label is the human label shown next to the control.
func (f Field) Label() string { return labels[f] }

// Valid reports whether f is one of the known draft fields.
func (f Field) Valid() bool {
	_, ok := labels[f]
	return ok
}

// IsDate reports whether f holds a canonical MM-dd-yyyy date.
func (f Field) IsDate() bool {
	return f == FieldDateOfBirth || f == FieldStartDate
}

// ParseField maps a posted control name onto a Field.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	return f, f.Valid()
}

// Departments is the one canonical department enumeration. The validation
// rules, the HTML dropdown and the terminal select all read it.
var Departments = []string{
	"Sales",
	"Marketing",
	"Engineering",
	"Human Resources",
	"Legal",
}

// IsDepartment reports whether name is in Departments.
func IsDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// State is one entry of the region reference list.
type State struct {
	Abbreviation string `yaml:"abbreviation" json:"abbreviation"`
	Name         string `yaml:"name" json:"name"`
}

var ErrUnknownField = errors.New("unknown employee field")

// EmployeeDraft is the in-progress record held by a form session. It is a value
// type: With returns a modified copy and never touches the receiver.
//
// The validate tags are the field rules; department, region and
// canonicaldate are registered by the form package.
type EmployeeDraft struct {
	FirstName   string `json:"firstName" validate:"notblank"`
	LastName    string `json:"lastName" validate:"notblank"`
	DateOfBirth string `json:"dateOfBirth" validate:"canonicaldate"`
	StartDate   string `json:"startDate" validate:"canonicaldate"`
	Department  string `json:"department" validate:"department"`
	Street      string `json:"street" validate:"notblank"`
	City        string `json:"city" validate:"notblank"`
	State       string `json:"state" validate:"region"`
	ZipCode     string `json:"zipCode" validate:"required,number"`
}

// With returns a copy of d with exactly one field replaced.
func (d EmployeeDraft) With(f Field, value string) (EmployeeDraft, error) {
	p := d.ptr(f)
	if p == nil {
		return d, ErrUnknownField
	}
	*p = value
	return d, nil
}

// Get returns the value of f, or "" for an unknown field.
func (d EmployeeDraft) Get(f Field) string {
	if p := d.ptr(f); p != nil {
		return *p
	}
	return ""
}

// IsEmpty reports whether every field is the empty string.
func (d EmployeeDraft) IsEmpty() bool {
	return d == EmployeeDraft{}
}

func (d *EmployeeDraft) ptr(f Field) *string {
	switch f {
	case FieldFirstName:
		return &d.FirstName
	case FieldLastName:
		return &d.LastName
	case FieldDateOfBirth:
		return &d.DateOfBirth
	case FieldStartDate:
		return &d.StartDate
	case FieldDepartment:
		return &d.Department
	case FieldStreet:
		return &d.Street
	case FieldCity:
		return &d.City
	case FieldState:
		return &d.State
	case FieldZipCode:
		return &d.ZipCode
	}
	return nil
}

// Employee is a committed record as owned by the application store.
type Employee struct {
	ID string `json:"id"`
	EmployeeDraft
	CreatedAt time.Time `json:"createdAt"`
}
