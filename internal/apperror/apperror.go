// Package apperror defines the error taxonomy shared by the record stores,
// the identity provider, and the provisioning workflows. Every error that
// crosses a module boundary carries a stable Kind so handlers can map it to
// a transport response without string matching.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers.
type Kind string

const (
	// Validation means a required field was missing or malformed.
	Validation Kind = "validation_failure"
	// Duplicate means a uniqueness constraint (handle, email, identity) was hit.
	Duplicate Kind = "duplicate_key"
	// Reference means a referenced record vanished between steps.
	Reference Kind = "reference_violation"
	// CredentialPolicy means the identity provider rejected the credential material.
	CredentialPolicy Kind = "credential_policy_violation"
	// NotFound means the target record does not exist.
	NotFound Kind = "not_found"
	// Unavailable means a collaborator could not be reached at all.
	Unavailable Kind = "collaborator_unavailable"
)

// Error is a kinded error. Err may be nil for leaf errors.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a leaf error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a leaf error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message. Returns nil if err is nil.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, walking the wrap chain. Errors without
// a kind report Unavailable: an unclassified failure from a collaborator is
// treated as unreachability rather than invented semantics.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unavailable
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
