// Package validation wraps go-playground/validator for client-side form
// checks. Field names in reports follow the json tags of the validated
// structs, so they line up with the field keys the gateway uses.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Engine returns the shared validator, configured on first use:
//   - JSON tag names are used in errors.
//   - "pwd" is an alias for the password minimum length.
//   - "otp" is an alias for a six digit one-time code.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8")
		v.RegisterAlias("otp", "len=6,number")
		instance = v
	})
	return instance
}

// Struct validates s and returns a field -> message map, or nil when s is
// valid.
func Struct(s any) map[string]string {
	return ToDetails(Engine().Struct(s))
}

// ToDetails converts a validator error into a map[field]message.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "pwd":
		return "must be at least 8 characters long"
	case "otp":
		return "must be a 6 digit code"
	case "number", "numeric":
		return "must contain digits only"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("select at least %s", param)
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("select at most %s", param)
		}
		return "must be at most " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "eqfield":
		return "must match " + strings.ToLower(param)
	default:
		return "is invalid"
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}
