package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers. Handlers branch on the kind, never
// on the message text.
type Kind string

const (
	// KindValidation is malformed shopper input, rejected before any
	// network call. User-correctable.
	KindValidation Kind = "validation"

	// KindConflict means seats or merchandise were no longer available at
	// commit time. The shopper should reselect.
	KindConflict Kind = "conflict"

	// KindUpstream is an I/O failure against the ledger, database or blob
	// store. After the booking record exists this implies a recoverable
	// inconsistency that operators must reconcile.
	KindUpstream Kind = "upstream"

	// KindNotification is a failed confirmation send. Always non-fatal.
	KindNotification Kind = "notification"

	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
)

// Error carries a machine-readable kind, a human message, and optional
// per-item details (e.g. every offending row or sold-out item).
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind wrapping a cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetails attaches per-item details and returns the same error
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

// KindOf extracts the kind from an error chain; unknown errors are upstream
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstream
}

// DetailsOf extracts the detail list from an error chain, if any
func DetailsOf(err error) []string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Details
	}
	return nil
}

// HTTPStatus maps an error kind to an HTTP status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
