package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig rejects bad parameters, particles or queued
	// edits before they reach the simulation state.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnstable reports a non-finite particle state after a step,
	// typically from extreme parameters or zero softening.
	ErrUnstable = errors.New("simulation unstable")
)

// StepError carries the step and simulated time at which a step
// failed, wrapping the underlying cause.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
