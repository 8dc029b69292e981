package sim

import (
	"errors"
	"fmt"
)

// ErrNonFinite indicates NaN or Inf coefficients in the spectral field.
// Unstable scheme/parameter combinations are expected failure modes, not
// bugs, so the driver checks after every step.
var ErrNonFinite = errors.New("sim: non-finite values in spectral field")

// BlowupError reports where a run went numerically unstable.
type BlowupError struct {
	Scheme    string
	Iteration int
	Time      float64
}

func (e *BlowupError) Error() string {
	return fmt.Sprintf("sim: scheme %s blew up at iteration %d (t=%.6g)", e.Scheme, e.Iteration, e.Time)
}

func (e *BlowupError) Unwrap() error { return ErrNonFinite }
