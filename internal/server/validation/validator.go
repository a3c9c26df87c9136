// Package validation holds the per-entity rule sets checked before every
// create and update. Only the first violated rule is reported.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Violation describes the first rule an entity failed.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

// Validator checks entities against their registered rule sets. It is safe
// for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	for _, rs := range ruleSets {
		v.RegisterStructValidationMapRules(rs.rules, rs.target)
	}
	return &Validator{validate: v}
}

// Validate returns nil when e satisfies its rule set and a *Violation for
// the first failed rule. Any other error means e cannot be validated at all.
func (v *Validator) Validate(e any) error {
	return first(v.validate.Struct(e))
}

// ValidateExcept is Validate with the rules of the named fields skipped.
// Field names are relative to e, e.g. "PasswordHash".
func (v *Validator) ValidateExcept(e any, fields ...string) error {
	return first(v.validate.StructExcept(e, fields...))
}

func first(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validation: %w", err)
	}

	fe := verrs[0]
	return &Violation{
		Field:   fe.StructField(),
		Rule:    fe.Tag(),
		Message: message(fe),
	}
}

func message(fe validator.FieldError) string {
	name := fe.StructField()
	if d, ok := displayNames[name]; ok {
		name = d
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
