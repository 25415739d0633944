package touchkit

import (
	"errors"
	"fmt"
)

// Sentinel errors. Only ErrMissingBackground and renderer failures are
// surfaced by public operations; the rest are handled as no-ops internally and
// exist for the registry API, logging, and load-error callbacks.
var (
	// ErrNotFound is returned when an element id is unknown.
	ErrNotFound = errors.New("element not found")

	// ErrMissingBackground is returned when exporting before the background
	// has finished loading.
	ErrMissingBackground = errors.New("background not loaded")

	// ErrInvalidCapability marks a gesture delta for a capability the
	// operator does not have.
	ErrInvalidCapability = errors.New("capability not enabled")

	// ErrLoadFailure marks an image that could not be loaded or decoded.
	ErrLoadFailure = errors.New("image load failed")

	// ErrTornDown is returned by operations on a kit after Teardown.
	ErrTornDown = errors.New("kit torn down")
)

// LoadError reports a failed element image load. It matches ErrLoadFailure
// with errors.Is and unwraps to the loader's error.
type LoadError struct {
	ID  ElementID
	Err error
}

func (e *LoadError) Error() string {
	if e.ID == BackgroundID {
		return fmt.Sprintf("load background: %v", e.Err)
	}
	return fmt.Sprintf("load element %d: %v", e.ID, e.Err)
}

// Unwrap returns the loader's error.
func (e *LoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrLoadFailure.
func (e *LoadError) Is(target error) bool { return target == ErrLoadFailure }
