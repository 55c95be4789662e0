package search

import (
	"errors"
	"fmt"
)

// Category classifies a launch-refusal error per spec.md section 7.
type Category int

const (
	// CategoryInvalidArgument covers precondition violations on the
	// arguments of a launch (an invalid Config, a bad DAG size, no DAG
	// uploaded, a non-positive block count, ...).
	CategoryInvalidArgument Category = iota
	// CategoryDeviceMemory covers failures allocating or transferring
	// device-resident buffers.
	CategoryDeviceMemory
	// CategoryLaunchFailure covers failures building or enqueuing the
	// kernel itself.
	CategoryLaunchFailure
)

func (c Category) String() string {
	switch c {
	case CategoryInvalidArgument:
		return "invalid-argument"
	case CategoryDeviceMemory:
		return "device-memory"
	case CategoryLaunchFailure:
		return "launch-failure"
	default:
		return "unknown"
	}
}

// Sentinel errors a caller can match with errors.Is regardless of the
// wrapped detail message.
var (
	ErrInvalidArgument = errors.New("search: invalid argument")
	ErrDeviceMemory    = errors.New("search: device memory error")
	ErrLaunchFailure   = errors.New("search: launch failure")
)

// LaunchError wraps a launch-refusal error with its spec.md section 7
// category. A launch that completes with a zero result nonce is not an
// error and is never represented by LaunchError.
type LaunchError struct {
	Category Category
	Err      error
}

func (e *LaunchError) Error() string {
	return e.Category.String() + ": " + e.Err.Error()
}

func (e *LaunchError) Unwrap() error { return e.Err }

func newLaunchError(cat Category, sentinel error, detail string) *LaunchError {
	err := &LaunchError{Category: cat, Err: fmt.Errorf("%w: %s", sentinel, detail)}
	log.Errorf("launch refused: %v", err)
	return err
}
