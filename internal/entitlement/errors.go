package entitlement

import (
	"errors"
	"fmt"
)

// ErrNotProvisioned means the owner has no subscription row yet. Callers
// must treat it as "still loading", never as a free-tier default.
var ErrNotProvisioned = errors.New("subscription not provisioned")

// StoreUnavailableError wraps a local-store failure. The local store is the
// system of record, so this is always surfaced, never silently defaulted.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}

// ProviderUnavailableError wraps a remote billing failure on an explicit
// user action (checkout, portal). Read paths never raise it; they degrade
// to the free-tier view instead.
type ProviderUnavailableError struct {
	Op  string
	Err error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("billing provider unavailable during %s: %v", e.Op, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// CapacityExceededError carries the numbers so the caller can render an
// actionable upgrade prompt.
type CapacityExceededError struct {
	Used  int
	Limit int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: %d of %d seats in use", e.Used, e.Limit)
}

// ValidationError rejects bad input before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
