package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArbitraryPathUsingMatrix(t *testing.T, matrix []pathCase) {
	for _, c := range matrix {
		initial := State{Position: 0, Speed: c.initialSpeed}
		final := State{Position: c.path, Speed: c.finalSpeed}
		limits := Limits{Speed: c.speedLimit, Accel: 20, Deccel: 200}

		sched, err := Compute(initial, final, limits)
		require.NoError(t, err, "%+v", c)
		assert.Equal(t, 0.0, sched.TPreDeccel, "%+v", c)
		assert.Equal(t, 0.0, sched.TPostAccel, "%+v", c)
		assert.Equal(t, 1, sched.Sign)
		assert.InDelta(t, final.Position, sched.Position(limits, initial), pathDelta, "%+v", c)
	}
}

func TestPathArbitraryNonTruncated(t *testing.T) {
	testArbitraryPathUsingMatrix(t, []pathCase{
		{25, 90, 0, 0},
		{25, 90, 10, 0},
		{25, 90, 0, 10},
		{25, 90, 15, 10},
	})
}

func TestPathArbitraryTruncated(t *testing.T) {
	testArbitraryPathUsingMatrix(t, []pathCase{
		{15, 90, 0, 0},
		{15, 90, 10, 0},
		{15, 90, 0, 10},
		{15, 90, 15, 10},
	})
}

func TestArbitraryWithoutRollbackMatchesPositive(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}
	for _, c := range []pathCase{{25, 90, 0, 0}, {25, 90, 10, 0}, {25, 90, 0, 10}, {15, 90, 15, 10}} {
		limits.Speed = c.speedLimit
		initial := State{Speed: c.initialSpeed}
		sched, err := Compute(initial, State{Position: c.path, Speed: c.finalSpeed}, limits)
		require.NoError(t, err)

		positive, err := ComputePositive(c.path, limits, c.initialSpeed, c.finalSpeed)
		require.NoError(t, err)

		assert.Equal(t, positive, sched.Plan)
		assert.Equal(t, positive.Position(limits, c.initialSpeed), sched.Position(limits, initial))
	}
}

func TestArbitraryOpposingInitialSpeed(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}
	initial := State{Position: 0, Speed: -10}
	final := State{Position: 90, Speed: 0}

	sched, err := Compute(initial, final, limits)
	require.NoError(t, err)

	assert.Equal(t, 1, sched.Sign)
	assert.Equal(t, 2.0, sched.TPreDeccel)
	assert.Equal(t, 0.0, sched.TPostAccel)
	assert.Equal(t, 5.0, sched.Accel(1, limits))
	assert.Equal(t, SegmentPreDeccel, sched.Segment(1))
	assert.InDelta(t, 0, sched.SpeedAt(sched.T0(), limits, initial), pathDelta)
	// braking covers 10 backwards before the main phase starts
	assert.InDelta(t, -10, sched.DisplacementAt(sched.T0(), limits, initial), pathDelta)
	assert.InDelta(t, 90, sched.Position(limits, initial), pathDelta)
	assert.InDelta(t, 0, sched.FinalSpeed(limits, initial), pathDelta)

	assertContinuous(t, Bind(sched, limits, initial), initial.Speed, []float64{sched.T0(), sched.T3(), sched.TTotal()})
}

func TestArbitraryOpposingFinalSpeed(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}
	initial := State{Position: 0, Speed: 0}
	final := State{Position: 90, Speed: -6}

	sched, err := Compute(initial, final, limits)
	require.NoError(t, err)

	assert.Equal(t, 0.0, sched.TPreDeccel)
	assert.Equal(t, 2.0, sched.TPostAccel)
	assert.Equal(t, SegmentPostAccel, sched.Segment(sched.TTotal()))
	assert.Equal(t, -3.0, sched.Accel(sched.TTotal(), limits))
	assert.Equal(t, 0.0, sched.Accel(sched.TTotal()+1, limits))
	assert.InDelta(t, 90, sched.Position(limits, initial), pathDelta)
	assert.InDelta(t, -6, sched.FinalSpeed(limits, initial), pathDelta)
	assert.InDelta(t, 96, sched.PositionAt(sched.T3(), limits, initial), pathDelta)

	assertContinuous(t, Bind(sched, limits, initial), initial.Speed, []float64{sched.T0(), sched.T3(), sched.TTotal()})
}

func TestArbitraryNegativeDirection(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}
	initial := State{Position: 10, Speed: -5}
	final := State{Position: -80, Speed: -2}

	sched, err := Compute(initial, final, limits)
	require.NoError(t, err)

	assert.Equal(t, -1, sched.Sign)
	assert.Equal(t, 0.0, sched.TPreDeccel)
	assert.Equal(t, 0.0, sched.TPostAccel)
	assert.Equal(t, -3.0, sched.Accel(0.5, limits))
	assert.InDelta(t, -80, sched.Position(limits, initial), pathDelta)
	assert.InDelta(t, -2, sched.FinalSpeed(limits, initial), pathDelta)
	assert.InDelta(t, 5, sched.MainPhaseInitialSpeed(initial), 0)
	assert.LessOrEqual(t, sched.MaxSpeed(limits, initial), limits.Speed)

	assertContinuous(t, Bind(sched, limits, initial), initial.Speed, []float64{sched.T0(), sched.T3(), sched.TTotal()})
}

func TestArbitraryBothBoundariesReversed(t *testing.T) {
	limits := Limits{Speed: 15, Accel: 3, Deccel: 5}
	initial := State{Position: 5, Speed: 10}
	final := State{Position: -60, Speed: 4}

	sched, err := Compute(initial, final, limits)
	require.NoError(t, err)

	assert.Equal(t, -1, sched.Sign)
	assert.Equal(t, 2.0, sched.TPreDeccel)
	assert.InDelta(t, 4.0/3.0, sched.TPostAccel, 1e-12)
	assert.Equal(t, -5.0, sched.Accel(0.5, limits))
	assert.Equal(t, 3.0, sched.Accel(sched.TTotal()-0.1, limits))
	assert.InDelta(t, -60, sched.Position(limits, initial), pathDelta)
	assert.InDelta(t, -60, sched.PositionAt(sched.TTotal()+5, limits, initial), pathDelta)
	assert.InDelta(t, 4, sched.FinalSpeed(limits, initial), pathDelta)
	assert.LessOrEqual(t, sched.MaxSpeed(limits, initial), limits.Speed+1e-9)

	assertContinuous(t, Bind(sched, limits, initial), initial.Speed, []float64{sched.T0(), sched.T3(), sched.TTotal()})
}

func TestComputeDoesNotMutateStates(t *testing.T) {
	initial := State{Position: 1, Speed: -3}
	final := State{Position: 50, Speed: -2}
	initialCopy, finalCopy := initial, final

	_, err := Compute(initial, final, Limits{Speed: 25, Accel: 3, Deccel: 5})
	require.NoError(t, err)
	assert.Equal(t, initialCopy, initial)
	assert.Equal(t, finalCopy, final)
}

func TestComputeZeroMove(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}
	initial := State{Position: 5}

	sched, err := Compute(initial, initial, limits)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sched.TTotal())
	assert.Equal(t, 1, sched.Sign)
	assert.Equal(t, 5.0, sched.Position(limits, initial))
	assert.Equal(t, 0.0, sched.Accel(0, limits))
	assert.Equal(t, SegmentAfter, sched.Segment(1))
}

func TestComputeErrors(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}

	// cannot stop within one unit from full speed without reversing
	_, err := Compute(State{Speed: 25}, State{Position: 1}, limits)
	assert.ErrorIs(t, err, ErrInfeasible)

	_, err = Compute(State{}, State{Position: 1}, Limits{Speed: 1, Accel: 1})
	assert.ErrorIs(t, err, ErrInvalidLimits)

	_, err = Compute(State{Speed: math.Inf(1)}, State{Position: 1}, limits)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestComputeBoundarySpeedAboveLimit(t *testing.T) {
	limits := Limits{Speed: 25, Accel: 3, Deccel: 5}

	cases := []struct {
		name       string
		initial    State
		final      State
		infeasible bool
	}{
		{"opposing initial is braked from", State{Speed: -40}, State{Position: 90}, false},
		{"opposing initial negative direction", State{Speed: 40}, State{Position: -90}, false},
		{"opposing final at limit", State{}, State{Position: 90, Speed: -25}, false},
		{"opposing final above limit", State{}, State{Position: 90, Speed: -40}, true},
		{"opposing final above limit negative direction", State{}, State{Position: -90, Speed: 40}, true},
		{"agreeing final above limit", State{}, State{Position: 900, Speed: 40}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sched, err := Compute(c.initial, c.final, limits)
			if c.infeasible {
				assert.ErrorIs(t, err, ErrInfeasible)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, c.final.Position, sched.Position(limits, c.initial), pathDelta)
			assert.InDelta(t, c.final.Speed, sched.FinalSpeed(limits, c.initial), pathDelta)

			samples, err := SampleProfile(Bind(sched, limits, c.initial), 0.05)
			require.NoError(t, err)
			for _, s := range samples {
				if s.T < sched.T0() {
					continue
				}
				assert.LessOrEqual(t, math.Abs(s.Speed), limits.Speed+1e-9, "t=%g", s.T)
			}
		})
	}
}
