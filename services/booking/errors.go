package booking

import "fmt"

// ValidationError rejects a malformed or out-of-window request with a
// reason code. It is always recovered locally, never fatal.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(code, msg string) error {
	return &ValidationError{Code: code, Message: msg}
}

// CapacityError reports a slot that filled up before the reservation could
// be claimed; the caller should re-prompt for a different slot.
type CapacityError struct {
	Date      string
	StartTime string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("slot %s %s is full", e.Date, e.StartTime)
}
