// Package validation evaluates struct validation rules and reports failures
// as field errors keyed by the JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single failed rule for a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// FieldErrors is the set of rule failures for one input. A non-empty
// FieldErrors is returned as an error.
type FieldErrors []FieldError

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, f := range fe {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Add appends a failure for field.
func (fe *FieldErrors) Add(field, rule, message string) {
	*fe = append(*fe, FieldError{Field: field, Rule: rule, Message: message})
}

// Has reports whether field already failed a rule.
func (fe FieldErrors) Has(field string) bool {
	for _, f := range fe {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns fe as an error, or nil when it is empty.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// AsFieldErrors extracts field errors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return nil, false
	}
	return fe, true
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Check evaluates the validate tags of v. It returns nil or FieldErrors.
func Check(v any) error {
	fe := Collect(v)
	return fe.Err()
}

// Collect evaluates the validate tags of v and returns every failure.
func Collect(v any) FieldErrors {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{{Rule: "invalid", Message: err.Error()}}
	}

	fe := make(FieldErrors, 0, len(verrs))
	for _, verr := range verrs {
		fe.Add(verr.Field(), verr.Tag(), message(verr))
	}
	return fe
}

func message(verr validator.FieldError) string {
	label := FieldLabel(verr.Field())

	switch verr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		if verr.Kind() == reflect.String {
			return fmt.Sprintf("%s must have at least %s characters", label, verr.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, verr.Param())
	case "max":
		if verr.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be greater than %s characters", label, verr.Param())
		}
		return fmt.Sprintf("%s must not be greater than %s", label, verr.Param())
	case "eqfield":
		return fmt.Sprintf("%s and %s do not match", label, FieldLabel(verr.Param()))
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", label, verr.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
