package handler

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxPlayerIDLength bounds player ids accepted by the API
const MaxPlayerIDLength = 64

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator builds the shared validator with the dig-specific tags
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("playerid", validatePlayerID)
		_ = v.RegisterValidation("finite", validateFinite)
		validate = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag list
func (v *Validator) ValidateVar(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// jsonFieldName reports fields by their wire name so error maps match the request body
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

// FormatValidationError maps validation failures to client-facing messages
// keyed by field name. Internal struct names never leak.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errs[e.Field()] = describeTag(e)
	}
	return errs
}

func describeTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "playerid":
		return "Invalid player id"
	case "finite":
		return "Must be a finite number"
	case "max", "lte":
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "min", "gte":
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", e.Param())
	default:
		return "Invalid value"
	}
}

// validatePlayerID accepts non-empty ids without whitespace or control characters
func validatePlayerID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" || len(id) > MaxPlayerIDLength {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) < 0
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
