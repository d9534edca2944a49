package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is reported when a session is started with a
// non-positive window size.
var ErrInvalidSize = errors.New("window size must be positive")

// BackendInitError means the window or its context could not be created.
// No render goroutine has been started when it is returned.
type BackendInitError struct {
	Err error
}

func (e *BackendInitError) Error() string {
	return fmt.Sprintf("backend initialization failed: %v", e.Err)
}

func (e *BackendInitError) Unwrap() error { return e.Err }

// ThreadSpawnError means the render worker could not take ownership of
// the context. The window has already been destroyed when it is returned.
type ThreadSpawnError struct {
	Err error
}

func (e *ThreadSpawnError) Error() string {
	return fmt.Sprintf("failed to start render worker: %v", e.Err)
}

func (e *ThreadSpawnError) Unwrap() error { return e.Err }

// DrawError is a fatal draw failure on the render worker.
type DrawError struct {
	Frame uint64
	Op    string
	Err   error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("draw failed at frame %d (%s): %v", e.Frame, e.Op, e.Err)
}

func (e *DrawError) Unwrap() error { return e.Err }
