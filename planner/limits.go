package planner

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Epsilon is the tolerance in time units below which a negative phase
// duration is treated as rounding noise and settled to zero.
const Epsilon = 1e-9

// Limits are the maximum magnitudes an axis may reach. Accel and Deccel are
// independent of each other.
type Limits struct {
	Speed  float64 `json:"speed"`
	Accel  float64 `json:"accel"`
	Deccel float64 `json:"deccel"`
}

// Validate reports every field that is not strictly positive and finite.
func (l Limits) Validate() error {
	return multierr.Combine(
		checkPositive("speed", l.Speed),
		checkPositive("accel", l.Accel),
		checkPositive("deccel", l.Deccel),
	)
}

func checkPositive(name string, v float64) error {
	if v > 0 && !math.IsInf(v, 1) {
		return nil
	}
	return errors.Wrapf(ErrInvalidLimits, "%s must be positive and finite, got %g", name, v)
}

// State is the instantaneous condition of the axis. Speed is signed.
type State struct {
	Position float64 `json:"position"`
	Speed    float64 `json:"speed"`
}

func (s State) Validate() error {
	return multierr.Combine(
		checkFinite("position", s.Position),
		checkFinite("speed", s.Speed),
	)
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrInvalidState, "%s must be finite, got %g", name, v)
	}
	return nil
}

// StepLimits are the integer limits of the discrete speed ramp: speed in
// steps per epoch, accel and deccel in speed units per epoch.
type StepLimits struct {
	Speed  int64 `json:"speed"`
	Accel  int64 `json:"accel"`
	Deccel int64 `json:"deccel"`
}

func (l StepLimits) Validate() error {
	var err error
	for _, f := range []struct {
		name string
		v    int64
	}{{"speed", l.Speed}, {"accel", l.Accel}, {"deccel", l.Deccel}} {
		if f.v <= 0 {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidLimits, "%s must be positive, got %d", f.name, f.v))
		}
	}
	return err
}
