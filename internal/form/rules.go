package form

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/csg33k/hrnet/internal/dates"
	"github.com/csg33k/hrnet/internal/domain"
	"github.com/csg33k/hrnet/internal/ports"
)

type statesKey struct{}

var (
	rules     *validator.Validate
	rulesOnce sync.Once
)

// engine returns the shared validator with the draft's custom tags
// registered. Field errors are reported under the json name, which is the
// domain.Field value.
func engine() *validator.Validate {
	rulesOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v.RegisterValidation("notblank", validators.NotBlank))
		mustRegister(v.RegisterValidation("canonicaldate", func(fl validator.FieldLevel) bool {
			_, ok := dates.FromCanonical(fl.Field().String())
			return ok
		}))
		mustRegister(v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
			return domain.IsDepartment(fl.Field().String())
		}))
		mustRegister(v.RegisterValidationCtx("region", func(ctx context.Context, fl validator.FieldLevel) bool {
			states, _ := ctx.Value(statesKey{}).(ports.StateLookup)
			v := fl.Field().String()
			return v != "" && states != nil && states.Contains(v)
		}))
		rules = v
	})
	return rules
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// failedFields maps a validator error onto the fields it names. Anything
// other than field errors fails every field.
func failedFields(err error) FieldSet {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewFieldSet(domain.Fields...)
	}
	failures := make(FieldSet, len(verrs))
	for _, fe := range verrs {
		failures[domain.Field(fe.Field())] = struct{}{}
	}
	return failures
}
