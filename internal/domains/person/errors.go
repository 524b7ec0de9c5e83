package person

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// Input errors
	ErrValidation = errors.New("person validation failed")
	ErrInvalidID  = errors.New("invalid person id")

	// Lookup errors
	ErrPersonNotFound = errors.New("person not found")

	// Store errors
	ErrConnection = errors.New("record store connection error")
	ErrInternal   = errors.New("record store internal error")
)

// ValidationError carries the field level failures of a rejected write.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Message string
	Details any
	Err     error
}

// NewValidationError wraps a validation failure (ozzo or decode error)
func NewValidationError(err error) *ValidationError {
	ve := &ValidationError{
		Message: err.Error(),
		Err:     err,
	}

	// Field errors render as {"field": "reason"}; decode errors have no details
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		ve.Details = fieldErrs
	}
	return ve
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrInvalidID):
		return "INVALID_ID"
	case errors.Is(err, ErrPersonNotFound):
		return "PERSON_NOT_FOUND"
	case errors.Is(err, ErrConnection):
		return "CONNECTION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrPersonNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
