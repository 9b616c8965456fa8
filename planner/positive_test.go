package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pathDelta = 1e-7

type pathCase struct {
	speedLimit, path, initialSpeed, finalSpeed float64
}

func testPositivePathUsingMatrix(t *testing.T, matrix []pathCase) {
	for _, c := range matrix {
		limits := Limits{Speed: c.speedLimit, Accel: 3, Deccel: 5}
		plan, err := ComputePositive(c.path, limits, c.initialSpeed, c.finalSpeed)
		require.NoError(t, err, "%+v", c)
		assert.InDelta(t, c.path, plan.Position(limits, c.initialSpeed), pathDelta, "%+v", c)
		assert.InDelta(t, c.finalSpeed, plan.FinalSpeed(limits, c.initialSpeed), pathDelta, "%+v", c)
	}
}

func TestPathPositiveNonTruncated(t *testing.T) {
	testPositivePathUsingMatrix(t, []pathCase{
		{25, 90, 0, 0},
		{25, 90, 10, 0},
		{25, 90, 0, 10},
		{25, 90, 15, 10},
	})
}

func TestPathPositiveTruncated(t *testing.T) {
	testPositivePathUsingMatrix(t, []pathCase{
		{15, 90, 0, 0},
		{15, 90, 10, 0},
		{15, 90, 0, 10},
		{15, 90, 15, 10},
	})
}

func TestComputePositiveFromRestTriangle(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}
	plan, err := ComputePositiveFromRest(90, limits)
	require.NoError(t, err)

	assert.InDelta(t, math.Sqrt(37.5), plan.TAccel, 1e-12)
	assert.InDelta(t, 0.6*math.Sqrt(37.5), plan.TDeccel, 1e-12)
	assert.Equal(t, 0.0, plan.TSteady)
	assert.LessOrEqual(t, plan.MaxSpeed(limits, 0), limits.Speed)
}

func TestComputePositiveFromRestTrapezoid(t *testing.T) {
	limits := Limits{Speed: 15, Accel: 3, Deccel: 5}
	plan, err := ComputePositiveFromRest(90, limits)
	require.NoError(t, err)

	// 37.5 accelerating, 30 cruising, 22.5 braking
	assert.InDelta(t, 5.0, plan.TAccel, 1e-12)
	assert.InDelta(t, 2.0, plan.TSteady, 1e-12)
	assert.InDelta(t, 3.0, plan.TDeccel, 1e-12)
	assert.InDelta(t, 10.0, plan.TTotal(), 1e-12)
	assert.InDelta(t, 15.0, plan.MaxSpeed(limits, 0), 1e-12)
}

func TestTriangleTrapezoidSelection(t *testing.T) {
	for _, speed := range []float64{5, 10, 15, 18, 19, 25, 40} {
		for _, path := range []float64{1, 10, 55, 90, 300} {
			limits := Limits{Speed: speed, Accel: 3, Deccel: 5}
			plan, err := ComputePositiveFromRest(path, limits)
			require.NoError(t, err)

			peak := math.Sqrt(2*path/((1+limits.Accel/limits.Deccel)*limits.Accel)) * limits.Accel
			if peak <= speed {
				assert.Equal(t, 0.0, plan.TSteady, "speed %v path %v", speed, path)
			} else {
				assert.Greater(t, plan.TSteady, 0.0, "speed %v path %v", speed, path)
			}
			assert.LessOrEqual(t, plan.MaxSpeed(limits, 0), speed+1e-9)
			assert.InDelta(t, path, plan.Position(limits, 0), 1e-9*path+pathDelta)
		}
	}
}

func TestSpeedLimitRespected(t *testing.T) {
	for _, initialSpeed := range []float64{0, 2, 7, 15} {
		for _, finalSpeed := range []float64{0, 1, 6, 15} {
			limits := Limits{Speed: 15, Accel: 3, Deccel: 5}
			plan, err := ComputePositive(200, limits, initialSpeed, finalSpeed)
			require.NoError(t, err)
			assert.LessOrEqual(t, plan.MaxSpeed(limits, initialSpeed), limits.Speed+1e-9)
		}
	}
}

func TestPositiveAccelPiecewise(t *testing.T) {
	limits := Limits{Speed: 15, Accel: 3, Deccel: 5}
	plan := PositiveSpeedPlan{TAccel: 5, TSteady: 2, TDeccel: 3}

	cases := []struct {
		t     float64
		accel float64
		phase Phase
	}{
		{-1, 0, PhaseIdleBefore},
		{0, 0, PhaseIdleBefore},
		{0.1, 3, PhaseAccelerating},
		{5, 3, PhaseAccelerating},
		{5.1, 0, PhaseCruising},
		{7, 0, PhaseCruising},
		{7.1, -5, PhaseDecelerating},
		{10, -5, PhaseDecelerating},
		{10.1, 0, PhaseIdleAfter},
	}
	for _, c := range cases {
		assert.Equal(t, c.accel, plan.Accel(c.t, limits), "t=%v", c.t)
		assert.Equal(t, c.phase, plan.Phase(c.t), "t=%v", c.t)
	}
}

func TestPositiveContinuity(t *testing.T) {
	limits := Limits{Speed: 15, Accel: 3, Deccel: 5}
	for _, c := range []pathCase{{15, 90, 0, 0}, {15, 90, 10, 0}, {15, 90, 0, 10}, {25, 90, 15, 10}, {25, 40, 3, 2}} {
		limits.Speed = c.speedLimit
		plan, err := ComputePositive(c.path, limits, c.initialSpeed, c.finalSpeed)
		require.NoError(t, err)

		p := BoundPositive{Plan: plan, Limits: limits, InitialSpeed: c.initialSpeed}
		assertContinuous(t, p, c.initialSpeed, []float64{plan.T1(), plan.T2(), plan.TTotal()})
		assert.Equal(t, plan.Position(limits, c.initialSpeed), p.DisplacementAt(plan.TTotal()))
		assert.InDelta(t, c.finalSpeed, p.SpeedAt(plan.TTotal()), pathDelta)
	}
}

func TestComputePositiveZeroDistance(t *testing.T) {
	plan, err := ComputePositive(0, Limits{Speed: 1, Accel: 1, Deccel: 1}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, PositiveSpeedPlan{}, plan)
	assert.Equal(t, 0.0, plan.TTotal())
}

func TestComputePositiveErrors(t *testing.T) {
	limits := Limits{Speed: 15, Accel: 3, Deccel: 5}

	_, err := ComputePositive(-1, limits, 0, 0)
	assert.ErrorIs(t, err, ErrInfeasible)

	_, err = ComputePositive(math.NaN(), limits, 0, 0)
	assert.ErrorIs(t, err, ErrInfeasible)

	_, err = ComputePositive(10, limits, -1, 0)
	assert.ErrorIs(t, err, ErrInfeasible)

	// already over the speed limit
	_, err = ComputePositive(90, limits, 20, 0)
	assert.ErrorIs(t, err, ErrInfeasible)

	// too short to brake to a stop
	_, err = ComputePositive(1, limits, 15, 0)
	assert.ErrorIs(t, err, ErrInfeasible)

	_, err = ComputePositive(10, Limits{Speed: 0, Accel: -1, Deccel: math.Inf(1)}, 0, 0)
	require.ErrorIs(t, err, ErrInvalidLimits)
	assert.Contains(t, err.Error(), "speed")
	assert.Contains(t, err.Error(), "accel")
	assert.Contains(t, err.Error(), "deccel")
}

// assertContinuous integrates p.Accel numerically and checks it against the
// closed form speed and displacement around every boundary.
func assertContinuous(t *testing.T, p Profile, initialSpeed float64, boundaries []float64) {
	t.Helper()
	const dt = 1e-4
	const tolerance = 1e-2

	for _, b := range boundaries {
		for _, off := range []float64{-1e-9, 0, 1e-9} {
			at := b + off
			if at < 0 {
				continue
			}
			assert.InDelta(t, p.SpeedAt(b), p.SpeedAt(at), 1e-6, "speed jump at %v", b)
			assert.InDelta(t, p.DisplacementAt(b), p.DisplacementAt(at), 1e-6, "position jump at %v", b)
		}

		speed, position := initialSpeed, 0.0
		steps := int(math.Round(b / dt))
		h := b / float64(max(steps, 1))
		for i := 0; i < steps; i++ {
			a := p.Accel((float64(i) + 0.5) * h)
			position += speed*h + a*h*h/2
			speed += a * h
		}
		assert.InDelta(t, p.SpeedAt(b), speed, tolerance, "integrated speed at %v", b)
		assert.InDelta(t, p.DisplacementAt(b), position, tolerance, "integrated position at %v", b)
	}
}
