package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	MinPriority = 0
	MaxPriority = 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Report fields by their JSON names so messages match the wire format.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateInput is the body of a create request.
type CreateInput struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	Priority    int    `json:"priority" validate:"gte=0,lte=10"`
	Status      Status `json:"status" validate:"oneof=pending in_progress completed"`
}

func (in CreateInput) Validate() error {
	return validationError(validate.Struct(in))
}

// UpdateInput is a partial update: nil fields are left unchanged by the server.
type UpdateInput struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string `json:"description,omitempty"`
	Priority    *int    `json:"priority,omitempty" validate:"omitempty,gte=0,lte=10"`
	Status      *Status `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
}

func (in UpdateInput) Validate() error {
	return validationError(validate.Struct(in))
}

// IsEmpty reports whether no field is set.
func (in UpdateInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Priority == nil && in.Status == nil
}

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msgs = append(msgs, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required", "notblank":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "url":
		return "must be a valid URL"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// StringPtr and friends build UpdateInput fields inline.
func StringPtr(s string) *string { return &s }
func IntPtr(n int) *int          { return &n }
func StatusPtr(s Status) *Status { return &s }
