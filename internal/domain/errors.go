package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrResolution = errors.New("invalid generation request")
	ErrRemote     = errors.New("remote generation failed")
	ErrSynthesis  = errors.New("local synthesis failed")
)

// RemoteError describes a failed call to the remote generation service. It
// always satisfies errors.Is(err, ErrRemote).
type RemoteError struct {
	Op         string
	StatusCode int
	Cause      string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Cause
	switch {
	case msg == "" && e.Err != nil:
		msg = e.Err.Error()
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	if msg == "" {
		msg = "unknown failure"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// Resolutionf builds an ErrResolution-wrapped error.
func Resolutionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResolution, fmt.Sprintf(format, args...))
}

// Synthesisf builds an ErrSynthesis-wrapped error.
func Synthesisf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSynthesis, fmt.Sprintf(format, args...))
}
