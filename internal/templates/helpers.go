package templates

import (
	"strings"

	"github.com/csg33k/hrnet/internal/domain"
)

// controlID is the DOM id of the wrapper around one form control.
func controlID(f domain.Field) string {
	return "control-" + string(f)
}

// inputName maps a field to its posted form key.
func inputName(f domain.Field) string {
	return string(f)
}

func upper(s string) string {
	return strings.ToUpper(s)
}
