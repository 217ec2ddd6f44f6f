// Package dates converts calendar dates to and from the string forms used by
// the employee form. Dates are wall-clock calendar days: there is no time of
// day and no time zone adjustment anywhere in this package.
package dates

import (
	"fmt"
	"time"
)

const (
	// CanonicalLayout is the layout stored in drafts and handed to the store.
	CanonicalLayout = "01-02-2006"
	// PickerLayout is the value format of an HTML <input type="date">.
	PickerLayout = "2006-01-02"
	// DisplayLayout is what the terminal prompt asks the user to type.
	DisplayLayout = "01/02/2006"
	// DisplayPlaceholder is shown in empty date controls.
	DisplayPlaceholder = "month/day/year"
)

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of returns the calendar date of t in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date according to now.
func Today(now func() time.Time) Date {
	if now == nil {
		now = time.Now
	}
	return Of(now())
}

// ToCanonical renders d as MM-dd-yyyy.
func ToCanonical(d Date) string {
	return fmt.Sprintf("%02d-%02d-%04d", int(d.Month), d.Day, d.Year)
}

// FromCanonical parses an MM-dd-yyyy string. ok is false when s does not match
// the layout or does not name a real day (month 13, February 30, ...).
func FromCanonical(s string) (Date, bool) {
	return parse(CanonicalLayout, s)
}

// PickerValue renders d for an HTML date input.
func (d Date) PickerValue() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// FromPicker parses the yyyy-MM-dd value submitted by an HTML date input.
func FromPicker(s string) (Date, bool) {
	return parse(PickerLayout, s)
}

// Display renders d as MM/dd/yyyy.
func (d Date) Display() string {
	return fmt.Sprintf("%02d/%02d/%04d", int(d.Month), d.Day, d.Year)
}

// FromDisplay parses an MM/dd/yyyy string.
func FromDisplay(s string) (Date, bool) {
	return parse(DisplayLayout, s)
}

// CanonicalToPicker converts a stored canonical value into an HTML date input
// value. Unparseable input yields "" so the picker opens empty.
func CanonicalToPicker(s string) string {
	d, ok := FromCanonical(s)
	if !ok {
		return ""
	}
	return d.PickerValue()
}

func parse(layout, s string) (Date, bool) {
	if s == "" {
		return Date{}, false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, false
	}
	d := Of(t)
	if d.Year < 1 {
		return Date{}, false
	}
	return d, true
}
