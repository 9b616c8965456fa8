package planner

import (
	"math"

	"github.com/pkg/errors"
)

// MaxSamples bounds the size of a sampled profile.
const MaxSamples = 1_000_000

// Profile is what a control loop polls. Queries are pure, so they can be made
// at any time in any order.
type Profile interface {
	Accel(t float64) float64
	SpeedAt(t float64) float64
	DisplacementAt(t float64) float64
	TTotal() float64
}

// Bound is a PositionChangePlan together with the inputs it was computed from.
type Bound struct {
	Plan    PositionChangePlan
	Limits  Limits
	Initial State
}

func Bind(plan PositionChangePlan, limits Limits, initial State) Bound {
	return Bound{Plan: plan, Limits: limits, Initial: initial}
}

func (b Bound) Accel(t float64) float64 {
	return b.Plan.Accel(t, b.Limits)
}

func (b Bound) SpeedAt(t float64) float64 {
	return b.Plan.SpeedAt(t, b.Limits, b.Initial)
}

func (b Bound) DisplacementAt(t float64) float64 {
	return b.Plan.DisplacementAt(t, b.Limits, b.Initial)
}

func (b Bound) TTotal() float64 {
	return b.Plan.TTotal()
}

// BoundPositive is a PositiveSpeedPlan together with its inputs.
type BoundPositive struct {
	Plan         PositiveSpeedPlan
	Limits       Limits
	InitialSpeed float64
}

func (b BoundPositive) Accel(t float64) float64 {
	return b.Plan.Accel(t, b.Limits)
}

func (b BoundPositive) SpeedAt(t float64) float64 {
	return b.Plan.SpeedAt(t, b.Limits, b.InitialSpeed)
}

func (b BoundPositive) DisplacementAt(t float64) float64 {
	return b.Plan.DisplacementAt(t, b.Limits, b.InitialSpeed)
}

func (b BoundPositive) TTotal() float64 {
	return b.Plan.TTotal()
}

type Sample struct {
	T            float64 `json:"t"`
	Accel        float64 `json:"accel"`
	Speed        float64 `json:"speed"`
	Displacement float64 `json:"displacement"`
}

// SampleProfile evaluates p every dt from 0 to the end of the profile. The
// last sample is always taken at TTotal.
func SampleProfile(p Profile, dt float64) ([]Sample, error) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return nil, errors.Wrapf(ErrInvalidInterval, "%g", dt)
	}
	total := p.TTotal()
	steps := math.Ceil(total / dt)
	if steps+1 > MaxSamples {
		return nil, errors.Wrapf(ErrInvalidInterval, "%g over %g gives more than %d samples", dt, total, MaxSamples)
	}

	n := int(steps)
	samples := make([]Sample, 0, n+1)
	for i := 0; i <= n; i++ {
		t := min(float64(i)*dt, total)
		samples = append(samples, Sample{
			T:            t,
			Accel:        p.Accel(t),
			Speed:        p.SpeedAt(t),
			Displacement: p.DisplacementAt(t),
		})
	}
	return samples, nil
}
