package service

import (
	"errors"
	"fmt"
)

// Rejection classes. Validation and business-rule rejections are
// deterministic and must not be retried as-is; only ErrStoreUnavailable is
// eligible for caller-driven retry.
var (
	ErrDateBlocked         = errors.New("date is blocked for booking")
	ErrSlotTaken           = errors.New("slot is already taken")
	ErrAlreadyTerminal     = errors.New("booking is cancelled")
	ErrNoStatusChange      = errors.New("booking already has this status")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBlockedDateNotFound = errors.New("blocked date not found")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// ValidationError reports a missing or malformed request field, rejected
// before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation returns the ValidationError inside err, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
