package planner

import (
	"github.com/pkg/errors"

	m "pfeifer.dev/motorplan/math"
)

// SpeedChangePlan is a speed ramp in whole epochs, for actuators that are
// driven step by step. The speed changes by Acceleration for each of the
// AccelerationEpochs, then by ResidualEpoch once.
type SpeedChangePlan struct {
	AccelerationEpochs int64 `json:"acceleration_epochs"`
	Acceleration       int64 `json:"acceleration"`
	ResidualEpoch      int64 `json:"residual_epoch"`
}

// Epochs is the number of epochs the ramp needs, residual included.
func (p SpeedChangePlan) Epochs() int64 {
	if p.ResidualEpoch != 0 {
		return p.AccelerationEpochs + 1
	}
	return p.AccelerationEpochs
}

// SpeedAt is the speed after the given number of epochs.
func (p SpeedChangePlan) SpeedAt(epoch, currentSpeed int64) int64 {
	if epoch <= 0 {
		return currentSpeed
	}
	if epoch <= p.AccelerationEpochs {
		return currentSpeed + p.Acceleration*epoch
	}
	return currentSpeed + p.Acceleration*p.AccelerationEpochs + p.ResidualEpoch
}

// ComputeSpeedChange ramps currentSpeed to setSpeed. Both must have the same
// sign, going through zero is two ramps.
func ComputeSpeedChange(currentSpeed, setSpeed int64, limits StepLimits) (SpeedChangePlan, error) {
	if err := limits.Validate(); err != nil {
		return SpeedChangePlan{}, err
	}
	if !m.AreTheSameSign(currentSpeed, setSpeed) {
		return SpeedChangePlan{}, errors.Wrapf(ErrSpeedReversal, "%d to %d", currentSpeed, setSpeed)
	}
	if m.AbsInt(setSpeed) > limits.Speed {
		return SpeedChangePlan{}, errors.Wrapf(ErrOverSpeed, "%d over %d", setSpeed, limits.Speed)
	}

	speedDelta := setSpeed - currentSpeed
	deltaLimit := limits.Accel
	if m.AbsInt(currentSpeed) > m.AbsInt(setSpeed) {
		deltaLimit = limits.Deccel
	}

	magnitude := m.AbsInt(speedDelta)
	return SpeedChangePlan{
		Acceleration:       m.ComputeAccel(speedDelta, deltaLimit),
		AccelerationEpochs: magnitude / deltaLimit,
		ResidualEpoch:      int64(m.Sign(speedDelta)) * (magnitude % deltaLimit),
	}, nil
}
