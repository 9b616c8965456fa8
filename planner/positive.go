package planner

import (
	"math"

	"github.com/pkg/errors"

	m "pfeifer.dev/motorplan/math"
)

type Phase int

const (
	PhaseIdleBefore Phase = iota
	PhaseAccelerating
	PhaseCruising
	PhaseDecelerating
	PhaseIdleAfter
)

func (p Phase) String() string {
	switch p {
	case PhaseIdleBefore:
		return "idle-before"
	case PhaseAccelerating:
		return "accelerating"
	case PhaseCruising:
		return "cruising"
	case PhaseDecelerating:
		return "decelerating"
	case PhaseIdleAfter:
		return "idle-after"
	default:
		return "unknown"
	}
}

// PositiveSpeedPlan is a position change in piecewise fashion, not quantized
// to steps. Direction, initial speed and final speed are all non-negative.
//  1. accelerate with limits.Accel for TAccel
//  2. hold the reached speed for TSteady
//  3. decelerate with limits.Deccel for TDeccel
type PositiveSpeedPlan struct {
	TAccel  float64 `json:"t_accel"`
	TSteady float64 `json:"t_steady"`
	TDeccel float64 `json:"t_deccel"`
}

func (p PositiveSpeedPlan) T1() float64 {
	return p.TAccel
}

func (p PositiveSpeedPlan) T2() float64 {
	return p.T1() + p.TSteady
}

func (p PositiveSpeedPlan) TTotal() float64 {
	return p.T2() + p.TDeccel
}

// Accel is the piecewise acceleration function.
func (p PositiveSpeedPlan) Accel(t float64, limits Limits) float64 {
	switch p.Phase(t) {
	case PhaseAccelerating:
		return limits.Accel
	case PhaseDecelerating:
		return -limits.Deccel
	default:
		return 0
	}
}

func (p PositiveSpeedPlan) Phase(t float64) Phase {
	if t <= 0 {
		return PhaseIdleBefore
	}
	if t <= p.TAccel {
		return PhaseAccelerating
	}
	if t <= p.T2() {
		return PhaseCruising
	}
	if t > p.TTotal() {
		return PhaseIdleAfter
	}
	return PhaseDecelerating
}

func (p PositiveSpeedPlan) MaxSpeed(limits Limits, initialSpeed float64) float64 {
	return initialSpeed + limits.Accel*p.TAccel
}

func (p PositiveSpeedPlan) FinalSpeed(limits Limits, initialSpeed float64) float64 {
	return p.MaxSpeed(limits, initialSpeed) - p.TDeccel*limits.Deccel
}

// Position is the distance covered by the whole plan.
func (p PositiveSpeedPlan) Position(limits Limits, initialSpeed float64) float64 {
	return m.PathAccelDeccel(initialSpeed, limits.Accel, p.TAccel, limits.Deccel, p.TDeccel) + p.TSteady*p.MaxSpeed(limits, initialSpeed)
}

func (p PositiveSpeedPlan) SpeedAt(t float64, limits Limits, initialSpeed float64) float64 {
	switch p.Phase(t) {
	case PhaseIdleBefore:
		return initialSpeed
	case PhaseAccelerating:
		return initialSpeed + limits.Accel*t
	case PhaseCruising:
		return p.MaxSpeed(limits, initialSpeed)
	case PhaseDecelerating:
		return p.MaxSpeed(limits, initialSpeed) - limits.Deccel*(t-p.T2())
	default:
		return p.FinalSpeed(limits, initialSpeed)
	}
}

// DisplacementAt is the distance covered after t units of time.
func (p PositiveSpeedPlan) DisplacementAt(t float64, limits Limits, initialSpeed float64) float64 {
	if t >= p.TTotal() {
		return p.Position(limits, initialSpeed)
	}
	switch p.Phase(t) {
	case PhaseIdleBefore:
		return 0
	case PhaseAccelerating:
		return m.PathAccel(initialSpeed, limits.Accel, t)
	}
	maxSpeed := p.MaxSpeed(limits, initialSpeed)
	accelPath := m.PathAccel(initialSpeed, limits.Accel, p.TAccel)
	if t <= p.T2() {
		return accelPath + maxSpeed*(t-p.T1())
	}
	return accelPath + maxSpeed*p.TSteady + m.PathAccel(maxSpeed, -limits.Deccel, t-p.T2())
}

// ComputePositive computes the timings of the move with the maximal allowed
// accelerations and speeds, and so for minimal time.
//
// Non-zero boundary speeds are reduced to the zero speed case: the move is
// rolled back in time to where it would have started from rest, and rolled
// forward to where it would have stopped. The virtual phases are subtracted
// from the solution afterwards.
func ComputePositive(s float64, limits Limits, initialSpeed, finalSpeed float64) (PositiveSpeedPlan, error) {
	if err := limits.Validate(); err != nil {
		return PositiveSpeedPlan{}, err
	}
	if math.IsNaN(s) || s < 0 {
		return PositiveSpeedPlan{}, errors.Wrapf(ErrInfeasible, "distance must be non-negative, got %g", s)
	}
	if !(initialSpeed >= 0) || !(finalSpeed >= 0) {
		return PositiveSpeedPlan{}, errors.Wrapf(ErrInfeasible, "boundary speeds must be non-negative, got %g and %g", initialSpeed, finalSpeed)
	}

	tRollBackAccelPhase := 0.0
	if initialSpeed != 0 {
		tRollBackAccelPhase = initialSpeed / limits.Accel
		s += m.PathAccel(0, limits.Accel, tRollBackAccelPhase)
	}

	tEarlyStopDeccelPhase := 0.0
	if finalSpeed != 0 {
		tEarlyStopDeccelPhase = finalSpeed / limits.Deccel
		s += m.PathAccel(0, limits.Deccel, tEarlyStopDeccelPhase)
	}

	res := computeFromRest(s, limits)
	res.TAccel -= tRollBackAccelPhase
	res.TDeccel -= tEarlyStopDeccelPhase

	var err error
	if res.TAccel, err = settle("acceleration", res.TAccel); err != nil {
		return PositiveSpeedPlan{}, err
	}
	if res.TDeccel, err = settle("deceleration", res.TDeccel); err != nil {
		return PositiveSpeedPlan{}, err
	}
	return res, nil
}

// ComputePositiveFromRest is ComputePositive for a move of length s that
// starts and ends at rest.
func ComputePositiveFromRest(s float64, limits Limits) (PositiveSpeedPlan, error) {
	return ComputePositive(s, limits, 0, 0)
}

func computeFromRest(s float64, limits Limits) PositiveSpeedPlan {
	tAccel := math.Sqrt(2 * s / ((1 + limits.Accel/limits.Deccel) * limits.Accel))
	tDeccel := limits.Accel / limits.Deccel * tAccel

	maxSpeedDuringAccel := tAccel * limits.Accel

	tSteady := 0.0
	if maxSpeedDuringAccel > limits.Speed {
		tAccel = limits.Speed / limits.Accel
		tDeccel = limits.Speed / limits.Deccel
		steadyPath := s - m.PathAccelDeccel(0, limits.Accel, tAccel, limits.Deccel, tDeccel)
		tSteady = steadyPath / limits.Speed
	}

	return PositiveSpeedPlan{
		TAccel:  tAccel,
		TSteady: tSteady,
		TDeccel: tDeccel,
	}
}

// settle clamps rounding noise around zero and rejects real negative phases.
func settle(phase string, d float64) (float64, error) {
	if d >= 0 {
		return d, nil
	}
	if d > -Epsilon {
		return 0, nil
	}
	return 0, errors.Wrapf(ErrInfeasible, "%s phase would last %g", phase, d)
}
