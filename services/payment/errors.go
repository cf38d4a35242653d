package payment

import "fmt"

// ProviderError wraps a gateway rejection or transport failure with the
// provider's name. Retrying is the caller's decision; the manager never
// retries on its own.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, Err: err}
}

// StateError marks a programming-contract violation in the transaction
// lifecycle (confirm without create, refund without capture). It is
// surfaced immediately and never silently ignored.
type StateError struct {
	Op      string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
