package domain

import "errors"

// ErrorKind enumerates every failure class the API can return.
// All business failures are expressed as one of these kinds and
// serialized through a single path at the HTTP boundary.
type ErrorKind int

const (
	KindValidationFailed ErrorKind = iota
	KindUnauthenticated
	KindInvalidUpdate
	KindInvalidStatus
	KindNotFound
	KindDuplicateUser
	KindInvalidCredentials
	KindPersistenceError
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the domain error type carried from services to handlers.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationFailed builds a validation error from field failures.
func NewValidationFailed(fields []FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: "Validation failed", Fields: fields}
}

// NewUnauthenticated builds a 401-class error.
func NewUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// NewInvalidUpdate signals a partial update touching a disallowed field.
func NewInvalidUpdate() *Error {
	return &Error{Kind: KindInvalidUpdate, Message: "Invalid updates!"}
}

// NewInvalidStatus signals a status value outside the loan status enum.
func NewInvalidStatus() *Error {
	return &Error{Kind: KindInvalidStatus, Message: "Invalid status"}
}

// NewNotFound builds a 404-class error. Ownership mismatch is reported
// with the same message as absence.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewDuplicateUser signals a taken username at registration.
func NewDuplicateUser() *Error {
	return &Error{Kind: KindDuplicateUser, Message: "User already exists"}
}

// NewInvalidCredentials is returned for both unknown username and wrong
// password so the two cases cannot be told apart.
func NewInvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid login credentials"}
}

// NewPersistenceError wraps an underlying store failure.
func NewPersistenceError(err error) *Error {
	return &Error{Kind: KindPersistenceError, Message: "Persistence failure", Err: err}
}

// AsError extracts a *Error from err, if it is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
