package core

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAlreadyStarted is returned when a supervisor is asked to
	// launch a second process.
	ErrAlreadyStarted = errors.New("supervisor already started")

	// ErrNotStarted is returned by operations that need a running child.
	ErrNotStarted = errors.New("supervisor not started")

	// ErrReadinessInconclusive is returned when the readiness probe
	// gives up without a positive answer.
	ErrReadinessInconclusive = errors.New("application readiness is inconclusive")

	// ErrInvalidTransition is returned by `StateMachine.Transition`.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// LaunchError means the external application could not be spawned at all.
// The startup sequence aborts and the redirect server never binds.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %q: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

func (e *LaunchError) Cause() error { return e.Err }

// ChildProcessFailure means the external application exited non-zero
// or was killed by a signal. ExitCode is -1 when the process did not
// exit on its own.
type ChildProcessFailure struct {
	Pid      int
	ExitCode int
	Err      error
}

func (e *ChildProcessFailure) Error() string {
	return fmt.Sprintf("application process %d failed (exit code %d): %v", e.Pid, e.ExitCode, e.Err)
}

func (e *ChildProcessFailure) Unwrap() error { return e.Err }

func (e *ChildProcessFailure) Cause() error { return e.Err }
