package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrAuthenticationFailed = errors.New("wrong username or password")
	ErrUsernameTaken        = errors.New("a user with this username already exists")
	ErrCapacityExceeded     = errors.New("unit video capacity exceeded")
	ErrInvalidLink          = errors.New("please use a valid video link or upload a file")
	ErrConfirmationRequired = errors.New("confirmation required")

	// storage
	ErrKeyNotFound          = errors.New("key not found")
	ErrStorageQuotaExceeded = errors.New("storage quota exceeded")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return "validation failed"
	}
	return err.Err.Error()
}

// IsValidation reports whether err is a validation failure of any kind.
func IsValidation(err error) bool {
	switch errors.Cause(err).(type) {
	case *ValidationError, validator.ValidationErrors:
		return true
	}
	return false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
