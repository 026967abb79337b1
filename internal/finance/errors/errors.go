package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// NoDataError marks a read that succeeded but found nothing. Callers keep it
// apart from real failures even though the API reports both as a 400.
type NoDataError struct {
	Msg string
}

func (e *NoDataError) Error() string {
	return e.Msg
}

func NewNoDataError(msg string) error {
	return &NoDataError{Msg: msg}
}

func IsNoData(err error) bool {
	var noData *NoDataError
	return errors.As(err, &noData)
}

var (
	ErrNoBills      = NewNoDataError("no bills found")
	ErrNoCategories = NewNoDataError("no bill types found")
)

var (
	ErrUnknownUser     = errors.New("user does not exist")
	ErrUnknownCategory = errors.New("bill type does not exist")
	// ErrReferenceViolation is returned when storage refuses a row whose user or
	// bill type is missing.
	ErrReferenceViolation = errors.New("referenced user or bill type does not exist")
)
