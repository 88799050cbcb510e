package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate unique key on create, or a delete blocked by dependents.
	ErrConflict = errors.New("conflict")

	// ErrInvalidReference indicates that the target of a foreign association is missing.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidRequest indicates malformed input or an attempt to set an immutable or derived field.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrStoreFailure wraps persistence errors that are not further classified.
	ErrStoreFailure = errors.New("store failure")
)

// New returns an error that reads as msg and matches kind under errors.Is.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// StatusCode maps an error onto the HTTP status it should be reported with.
// Unclassified errors are treated as store failures.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidReference), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
