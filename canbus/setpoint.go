package canbus

import (
	"math"

	"github.com/pkg/errors"
	"go.einride.tech/can"
	"pfeifer.dev/motorplan/planner"
)

const (
	ACCEL_SCALE        = 0.01
	SPEED_SCALE        = 0.01
	DISPLACEMENT_SCALE = 0.001
	SETPOINT_LENGTH    = 8
)

var ErrOutOfRange = errors.New("setpoint out of range")

// Setpoint layout, little endian:
//
//	bits  0-15 accel        int16 x0.01
//	bits 16-31 speed        int16 x0.01
//	bits 32-63 displacement int32 x0.001
type Setpoint struct {
	Accel        float64
	Speed        float64
	Displacement float64
}

func SetpointFromSample(s planner.Sample) Setpoint {
	return Setpoint{Accel: s.Accel, Speed: s.Speed, Displacement: s.Displacement}
}

func scale(name string, v, factor float64, bits uint8) (int64, error) {
	raw := math.Round(v / factor)
	limit := math.Ldexp(1, int(bits)-1)
	if math.IsNaN(raw) || raw < -limit || raw > limit-1 {
		return 0, errors.Wrapf(ErrOutOfRange, "%s %g does not fit %d bits at %g", name, v, bits, factor)
	}
	return int64(raw), nil
}

func EncodeSetpoint(id uint32, s Setpoint) (can.Frame, error) {
	accel, err := scale("accel", s.Accel, ACCEL_SCALE, 16)
	if err != nil {
		return can.Frame{}, err
	}
	speed, err := scale("speed", s.Speed, SPEED_SCALE, 16)
	if err != nil {
		return can.Frame{}, err
	}
	displacement, err := scale("displacement", s.Displacement, DISPLACEMENT_SCALE, 32)
	if err != nil {
		return can.Frame{}, err
	}

	f := can.Frame{ID: id, Length: SETPOINT_LENGTH}
	f.Data.SetSignedBitsLittleEndian(0, 16, accel)
	f.Data.SetSignedBitsLittleEndian(16, 16, speed)
	f.Data.SetSignedBitsLittleEndian(32, 32, displacement)
	return f, errors.Wrap(f.Validate(), "invalid setpoint frame")
}

func DecodeSetpoint(f can.Frame) (Setpoint, error) {
	if f.Length != SETPOINT_LENGTH {
		return Setpoint{}, errors.Errorf("setpoint frame %#x has length %d", f.ID, f.Length)
	}
	return Setpoint{
		Accel:        float64(f.Data.SignedBitsLittleEndian(0, 16)) * ACCEL_SCALE,
		Speed:        float64(f.Data.SignedBitsLittleEndian(16, 16)) * SPEED_SCALE,
		Displacement: float64(f.Data.SignedBitsLittleEndian(32, 32)) * DISPLACEMENT_SCALE,
	}, nil
}
