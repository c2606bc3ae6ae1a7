package modals

import "errors"

var (
	// ErrUnknownModal marks diagnostics about ids that were never registered.
	ErrUnknownModal = errors.New("modals: modal not registered")
	// ErrGuardFailed wraps rule errors raised while evaluating a close guard.
	ErrGuardFailed = errors.New("modals: close guard failed")
)
