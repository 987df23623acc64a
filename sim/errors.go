package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks counts, horizons, or reference data the generator
// cannot run with. Callers test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotSimulated is returned by Simulation accessors called before Simulate.
var ErrNotSimulated = errors.New("simulation has not been run")

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
