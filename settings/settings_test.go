package settings

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pfeifer.dev/motorplan/params"
	"pfeifer.dev/motorplan/planner"
)

func useTempParams(t *testing.T) {
	t.Helper()
	old := params.ParamsPath
	t.Cleanup(func() { params.ParamsPath = old })
	params.SetParamsPath(filepath.Join(t.TempDir(), "d"))
}

func TestDefaultIsValid(t *testing.T) {
	s := MotorplanSettings{}
	s.Default()
	assert.NoError(t, s.Validate())
	assert.Equal(t, planner.Limits{Speed: 25, Accel: 3, Deccel: 5}, s.Limits)
	assert.Equal(t, REQUEST_TOPIC, s.RequestTopic)
}

func TestSaveLoad(t *testing.T) {
	useTempParams(t)

	s := MotorplanSettings{}
	s.Default()
	s.Limits.Accel = 7.5
	s.CanInterface = "vcan0"
	s.Save()

	loaded := MotorplanSettings{}
	require.True(t, loaded.Load())
	assert.Equal(t, s, loaded)
}

func TestLoadMissingKeepsDefaults(t *testing.T) {
	useTempParams(t)

	s := MotorplanSettings{}
	assert.False(t, s.Load())
	defaults := MotorplanSettings{}
	defaults.Default()
	assert.Equal(t, defaults, s)
}

func TestLoadPartialFillsDefaults(t *testing.T) {
	useTempParams(t)
	require.NoError(t, params.PutParam(params.MOTORPLAN_SETTINGS, []byte(`{"limits":{"speed":12,"accel":1,"deccel":2}}`)))

	s := MotorplanSettings{}
	require.True(t, s.Load())
	assert.Equal(t, planner.Limits{Speed: 12, Accel: 1, Deccel: 2}, s.Limits)
	assert.Equal(t, 0.1, s.SampleInterval)
}

func TestSet(t *testing.T) {
	s := MotorplanSettings{}
	s.Default()

	cases := []struct {
		key, value string
		check      func() any
		want       any
	}{
		{"limits.speed", "40", func() any { return s.Limits.Speed }, 40.0},
		{"limits.deccel", "2.5", func() any { return s.Limits.Deccel }, 2.5},
		{"step_limits.accel", "9", func() any { return s.StepLimits.Accel }, int64(9)},
		{"can_id", "0x123", func() any { return s.CanID }, uint32(0x123)},
		{"can_interface", "vcan0", func() any { return s.CanInterface }, "vcan0"},
		{"sample_interval", "0.25", func() any { return s.SampleInterval }, 0.25},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			require.NoError(t, s.Set(c.key, c.value))
			assert.Equal(t, c.want, c.check())
		})
	}

	assert.ErrorIs(t, s.Set("nope", "1"), ErrUnknownSetting)
	assert.ErrorIs(t, s.Set("limits.accel", "fast"), ErrInvalidSetting)
	assert.ErrorIs(t, s.Set("step_limits.speed", "1.5"), ErrInvalidSetting)
}

func TestValidate(t *testing.T) {
	s := MotorplanSettings{}
	s.Default()
	s.Limits.Accel = 0
	s.SampleInterval = -1
	s.CanID = 0x800

	err := s.Validate()
	assert.ErrorIs(t, err, planner.ErrInvalidLimits)
	assert.ErrorIs(t, err, ErrInvalidSetting)
	assert.Contains(t, err.Error(), "sample_interval")
	assert.Contains(t, err.Error(), "can_id")
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, LogLevel("info"))
	assert.Equal(t, slog.LevelWarn, LogLevel("warn"))
	assert.Equal(t, slog.LevelError, LogLevel("error"))
	assert.Equal(t, slog.LevelError, LogLevel("verbose"))
}

func TestSetLogLevelWaitsForApply(t *testing.T) {
	prev := slog.SetLogLoggerLevel(slog.LevelError)
	t.Cleanup(func() { slog.SetLogLoggerLevel(prev) })

	s := MotorplanSettings{}
	s.Default()
	require.NoError(t, s.Set("log_level", "debug"))
	assert.Equal(t, "debug", s.LogLevel)
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	s.ApplyLogLevel()
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
