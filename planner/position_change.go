package planner

import (
	"github.com/pkg/errors"

	m "pfeifer.dev/motorplan/math"
)

type Segment int

const (
	SegmentBefore Segment = iota
	SegmentPreDeccel
	SegmentMain
	SegmentPostAccel
	SegmentAfter
)

func (s Segment) String() string {
	switch s {
	case SegmentBefore:
		return "before"
	case SegmentPreDeccel:
		return "pre-deccel"
	case SegmentMain:
		return "main"
	case SegmentPostAccel:
		return "post-accel"
	case SegmentAfter:
		return "after"
	default:
		return "unknown"
	}
}

// PositionChangePlan is a position change between arbitrary states, not
// quantized to steps.
//  1. decelerate from the initial speed to zero for TPreDeccel. Skipped if 0.
//  2. execute Plan with its accelerations multiplied by Sign
//  3. accelerate from zero to the final speed for TPostAccel. Skipped if 0.
//
// The pre and post phases only exist when a boundary speed opposes the
// direction of travel, so they always run against Sign.
type PositionChangePlan struct {
	Sign       int               `json:"sign"`
	Plan       PositiveSpeedPlan `json:"plan"`
	TPreDeccel float64           `json:"t_pre_deccel"`
	TPostAccel float64           `json:"t_post_accel"`
}

func (p PositionChangePlan) T0() float64 {
	return p.TPreDeccel
}

func (p PositionChangePlan) T3() float64 {
	return p.T0() + p.Plan.TTotal()
}

func (p PositionChangePlan) TTotal() float64 {
	return p.T3() + p.TPostAccel
}

func (p PositionChangePlan) sign() float64 {
	return float64(p.Sign)
}

func (p PositionChangePlan) Segment(t float64) Segment {
	if t <= 0 {
		return SegmentBefore
	}
	if t <= p.T0() {
		return SegmentPreDeccel
	}
	if t <= p.T3() {
		return SegmentMain
	}
	if t > p.TTotal() {
		return SegmentAfter
	}
	return SegmentPostAccel
}

// Accel is the piecewise acceleration function.
func (p PositionChangePlan) Accel(t float64, limits Limits) float64 {
	switch p.Segment(t) {
	case SegmentPreDeccel:
		return p.preDeccelAcceleration(limits)
	case SegmentMain:
		return p.sign() * p.Plan.Accel(t-p.T0(), limits)
	case SegmentPostAccel:
		return p.postAccelAcceleration(limits)
	default:
		return 0
	}
}

func (p PositionChangePlan) preDeccelAcceleration(limits Limits) float64 {
	return p.sign() * limits.Deccel
}

func (p PositionChangePlan) postAccelAcceleration(limits Limits) float64 {
	return -p.sign() * limits.Accel
}

// MainPhaseInitialSpeed is the speed magnitude, in the direction of travel,
// the inner plan starts with.
func (p PositionChangePlan) MainPhaseInitialSpeed(initial State) float64 {
	if p.TPreDeccel != 0 {
		return 0
	}
	return initial.Speed * p.sign()
}

func (p PositionChangePlan) preDeccelPosition(limits Limits, initial State) float64 {
	return initial.Position + m.PathAccel(initial.Speed, p.preDeccelAcceleration(limits), p.TPreDeccel)
}

func (p PositionChangePlan) postAccelPositionDelta(limits Limits) float64 {
	return m.PathAccel(0, p.postAccelAcceleration(limits), p.TPostAccel)
}

// Position is the absolute position reached at the end of the plan.
func (p PositionChangePlan) Position(limits Limits, initial State) float64 {
	v0 := p.MainPhaseInitialSpeed(initial)
	return p.preDeccelPosition(limits, initial) + p.sign()*p.Plan.Position(limits, v0) + p.postAccelPositionDelta(limits)
}

// MaxSpeed is the peak speed magnitude of the main phase.
func (p PositionChangePlan) MaxSpeed(limits Limits, initial State) float64 {
	return p.Plan.MaxSpeed(limits, p.MainPhaseInitialSpeed(initial))
}

func (p PositionChangePlan) FinalSpeed(limits Limits, initial State) float64 {
	v0 := p.MainPhaseInitialSpeed(initial)
	return p.sign()*p.Plan.FinalSpeed(limits, v0) + p.TPostAccel*p.postAccelAcceleration(limits)
}

// SpeedAt is the signed speed after t units of time.
func (p PositionChangePlan) SpeedAt(t float64, limits Limits, initial State) float64 {
	v0 := p.MainPhaseInitialSpeed(initial)
	switch p.Segment(t) {
	case SegmentBefore:
		return initial.Speed
	case SegmentPreDeccel:
		return initial.Speed + p.preDeccelAcceleration(limits)*t
	case SegmentMain:
		return p.sign() * p.Plan.SpeedAt(t-p.T0(), limits, v0)
	case SegmentPostAccel:
		return p.sign()*p.Plan.FinalSpeed(limits, v0) + p.postAccelAcceleration(limits)*(t-p.T3())
	default:
		return p.FinalSpeed(limits, initial)
	}
}

// DisplacementAt is the signed distance from initial.Position after t units
// of time.
func (p PositionChangePlan) DisplacementAt(t float64, limits Limits, initial State) float64 {
	if t >= p.TTotal() {
		return p.Position(limits, initial) - initial.Position
	}
	v0 := p.MainPhaseInitialSpeed(initial)
	switch p.Segment(t) {
	case SegmentBefore:
		return 0
	case SegmentPreDeccel:
		return m.PathAccel(initial.Speed, p.preDeccelAcceleration(limits), t)
	}
	pre := m.PathAccel(initial.Speed, p.preDeccelAcceleration(limits), p.TPreDeccel)
	if t <= p.T3() {
		return pre + p.sign()*p.Plan.DisplacementAt(t-p.T0(), limits, v0)
	}
	return pre + p.sign()*p.Plan.Position(limits, v0) + m.PathAccel(0, p.postAccelAcceleration(limits), t-p.T3())
}

func (p PositionChangePlan) PositionAt(t float64, limits Limits, initial State) float64 {
	if t >= p.TTotal() {
		return p.Position(limits, initial)
	}
	return initial.Position + p.DisplacementAt(t, limits, initial)
}

// Compute plans the minimal time move from initial to final. Boundary speeds
// that oppose the direction of travel get a real braking phase before, or an
// accelerating phase after, the main move. An initial speed above the limit is
// braked from, a final one is infeasible. The input states are not modified.
func Compute(initial, final State, limits Limits) (PositionChangePlan, error) {
	if err := limits.Validate(); err != nil {
		return PositionChangePlan{}, err
	}
	if err := initial.Validate(); err != nil {
		return PositionChangePlan{}, errors.Wrap(err, "initial state")
	}
	if err := final.Validate(); err != nil {
		return PositionChangePlan{}, errors.Wrap(err, "final state")
	}

	movementVector := final.Position - initial.Position
	movVectorSign := m.Sign(movementVector)
	initialAgrees := m.AreTheSameSign(initial.Speed, movementVector)
	finalAgrees := m.AreTheSameSign(final.Speed, movementVector)
	initialSpeed := initial.Speed
	finalSpeed := final.Speed

	tPreDeccel := 0.0
	if !initialAgrees {
		// brake to zero first
		tPreDeccel = m.Abs(initialSpeed) / limits.Deccel
		movementVector -= float64(m.Sign(initialSpeed)) * m.PathAccel(0, limits.Deccel, tPreDeccel)
		initialSpeed = 0
	}

	tPostAccel := 0.0
	if !finalAgrees {
		if m.Abs(finalSpeed) > limits.Speed {
			return PositionChangePlan{}, errors.Wrapf(ErrInfeasible, "final speed %g exceeds speed limit %g", finalSpeed, limits.Speed)
		}
		// accelerate away from zero after
		tPostAccel = m.Abs(finalSpeed) / limits.Accel
		movementVector -= float64(m.Sign(finalSpeed)) * m.PathAccel(0, limits.Accel, tPostAccel)
		finalSpeed = 0
	}

	sign := float64(movVectorSign)
	s := movementVector * sign
	plan, err := ComputePositive(s, limits, initialSpeed*sign, finalSpeed*sign)
	if err != nil {
		return PositionChangePlan{}, errors.Wrapf(err, "main phase from %g to %g", initial.Position, final.Position)
	}

	return PositionChangePlan{
		Sign:       movVectorSign,
		Plan:       plan,
		TPreDeccel: tPreDeccel,
		TPostAccel: tPostAccel,
	}, nil
}
