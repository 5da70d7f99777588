package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"loandesk/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Engine evaluates the declarative per-endpoint field constraints carried
// as validate tags on request structs. All failing fields are reported, in
// declaration order, with the first failing constraint per field.
type Engine struct {
	v *validator.Validate
}

// NewEngine creates a validation engine with JSON field naming and the
// custom date constraint registered.
func NewEngine() *Engine {
	v := validator.New()

	// Report fields under their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		panic(err)
	}

	return &Engine{v: v}
}

// Check validates a request struct and returns the field errors, or nil.
func (e *Engine) Check(req interface{}) []domain.FieldError {
	err := e.v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return fields
}

// TypeError maps a JSON type mismatch (for example a string where a number
// belongs) to the same field message the constraint table uses. The decoder
// rejects such payloads before any constraint can run.
func TypeError(err error) (domain.FieldError, bool) {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field == "" {
		return domain.FieldError{}, false
	}
	return domain.FieldError{
		Field:   ute.Field,
		Message: messageFor(ute.Field, "type"),
	}, true
}

// IsValidID reports whether a path parameter is a well-formed identifier.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isISODate accepts ISO-8601 dates, with or without a time component.
func isISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return true
	}
	return false
}

// messages maps "field.constraint" to the user-facing message. A bare
// field key acts as the fallback for any constraint on that field.
var messages = map[string]string{
	"username.required":     "Username is required",
	"username.min":          "Username must be at least 3 characters long",
	"password.required":     "Password is required",
	"password.min":          "Password must be at least 6 characters long",
	"borrowerName.required": "Borrower name is required",
	"borrowerName.min":      "Borrower name cannot be empty",
	"borrowerName.type":     "Borrower name is required",
	"loanAmount":            "Loan amount must be a number",
	"loanAmount.gt":         "Loan amount must be greater than 0",
	"interestRate":          "Interest rate must be between 0 and 100",
	"loanTerm":              "Loan term must be a positive integer",
	"paymentDueDate":        "Payment due date must be a valid date",
	"status":                "Invalid status",
}

func messageFor(field, constraint string) string {
	if msg, ok := messages[field+"."+constraint]; ok {
		return msg
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}
