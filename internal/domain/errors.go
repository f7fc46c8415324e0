package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStale marks a timer or response that outlived the state it targeted.
	ErrStale = errors.New("stale callback discarded")
	// ErrBusy is returned when an action is triggered while its previous run is in flight.
	ErrBusy = errors.New("operation already in progress")
	// ErrLoginRequired is returned by protected operations without a complete session.
	ErrLoginRequired = errors.New("login required")
)

// ValidationError is raised locally before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError wraps connectivity failures and undecodable responses.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendError is a non-2xx reply, carrying the backend's error text when it sent one.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// BackendMessage extracts the backend-supplied text, if any.
func BackendMessage(err error) (string, bool) {
	var b *BackendError
	if errors.As(err, &b) && b.Message != "" {
		return b.Message, true
	}
	return "", false
}
