package booking

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures so the API layer can map them to HTTP
// statuses without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation covers malformed or out-of-range input (bad dates,
	// party size out of range, unknown status transitions).
	KindValidation
	// KindNotFound covers references to missing or inactive entities.
	KindNotFound
	// KindAvailability means the requested stay cannot be satisfied by the
	// current inventory.
	KindAvailability
	// KindConflict means a concurrent operation won (already cancelled,
	// allotment taken between check and decrement).
	KindConflict
)

// Error is a classified engine error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf extracts the Kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
