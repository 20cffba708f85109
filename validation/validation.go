// Package validation wraps go-playground/validator with human readable messages keyed
// by JSON field name. It is shared by the API handlers and the vendorctl workflow.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError describes one failed rule on one field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns its field errors in declaration order, or nil.
func Struct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe, prettify(fe.Field())),
		})
	}
	return out
}

// Summary joins the messages of errs with "; ".
func Summary(errs []FieldError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func message(fe validator.FieldError, name string) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "numeric":
		return name + " must be a numeric value"
	case "min":
		if fe.Kind() == reflect.String {
			return name + " must be at least " + fe.Param() + " characters long"
		}
		return name + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return name + " must be at most " + fe.Param() + " characters long"
		}
		return name + " must be at most " + fe.Param()
	case "gte":
		return name + " must be greater than or equal to " + fe.Param()
	case "lte":
		return name + " must be less than or equal to " + fe.Param()
	case "eqfield":
		return name + " must match " + prettify(fe.Param())
	case "oneof":
		return name + " must be one of: " + fe.Param()
	default:
		return name + " is invalid"
	}
}

// prettify turns "vendorCode" or "SAC_HSN_Code" into "Vendor Code" / "SAC HSN Code".
func prettify(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	var out []rune
	runes := []rune(field)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' && runes[i-1] >= 'a' && runes[i-1] <= 'z' {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return cases.Title(language.Und, cases.NoLower).String(string(out))
}
