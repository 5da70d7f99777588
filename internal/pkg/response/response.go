package response

import (
	"loandesk/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ValidationFailed sends a 400 response carrying field-level errors in
// the order the failing constraints were declared.
func ValidationFailed(c *fiber.Ctx, fields []domain.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{
		Success: false,
		Error:   "Validation failed",
		Fields:  fields,
	})
}

// FromError serializes a domain error; this is the single path turning
// error kinds into HTTP responses.
func FromError(c *fiber.Ctx, err error) error {
	de, ok := domain.AsError(err)
	if !ok {
		return InternalServerError(c, "Internal server error")
	}

	switch de.Kind {
	case domain.KindValidationFailed:
		return ValidationFailed(c, de.Fields)
	case domain.KindUnauthenticated, domain.KindInvalidCredentials:
		return Unauthorized(c, de.Message)
	case domain.KindNotFound:
		return NotFound(c, de.Message)
	case domain.KindInvalidUpdate, domain.KindInvalidStatus, domain.KindDuplicateUser:
		return BadRequest(c, de.Message)
	default:
		return InternalServerError(c, de.Message)
	}
}
