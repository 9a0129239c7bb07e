// Package geo provides the one-shot location acquisition capability used to
// auto-fill location-dependent answers. Acquisition is modelled as a Locator
// interface so the survey core stays testable without a device.
package geo

import (
	"context"
	"errors"
	"fmt"
)

// Fix is a successfully acquired position.
type Fix struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the fix the way it is surfaced to the user: four decimals.
func (f Fix) String() string {
	return fmt.Sprintf("%.4f, %.4f", f.Lat, f.Lng)
}

// ErrUnavailable means the environment exposes no location capability at
// all. Distinct from a failed acquisition: there is nothing to retry.
var ErrUnavailable = errors.New("no location capability available")

// ErrorKind categorizes a failed acquisition.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindPermissionDenied
	KindPositionUnavailable
	KindTimeout
)

// Error is a categorized acquisition failure. The user-facing message is
// fixed per category; Cause carries the transport-level detail for logs.
type Error struct {
	Kind  ErrorKind
	Cause error
}

func (e *Error) Error() string {
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Message returns the fixed user-facing text for the category.
func (e *Error) Message() string {
	switch e.Kind {
	case KindPermissionDenied:
		return "User denied permission."
	case KindPositionUnavailable:
		return "Position unavailable (low signal)."
	case KindTimeout:
		return "Request timed out (took too long)."
	default:
		return "An unknown error occurred."
	}
}

// Locator acquires the current device position. Implementations honor the
// context for cancellation and apply their own hard timeout.
type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}
