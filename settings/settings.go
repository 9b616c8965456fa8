package settings

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"pfeifer.dev/motorplan/params"
	"pfeifer.dev/motorplan/planner"
	"pfeifer.dev/motorplan/utils"
)

var (
	Settings = MotorplanSettings{}

	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidSetting = errors.New("invalid setting")
)

type MotorplanSettings struct {
	LogLevel       string             `json:"log_level"`
	Limits         planner.Limits     `json:"limits"`
	StepLimits     planner.StepLimits `json:"step_limits"`
	SampleInterval float64            `json:"sample_interval"`
	PlotWidthCm    float64            `json:"plot_width_cm"`
	PlotHeightCm   float64            `json:"plot_height_cm"`
	CanInterface   string             `json:"can_interface"`
	CanID          uint32             `json:"can_id"`
	RequestTopic   string             `json:"request_topic"`
	PlanTopic      string             `json:"plan_topic"`
}

func (s *MotorplanSettings) Default() {
	s.LogLevel = "error"
	s.Limits = planner.Limits{Speed: 25, Accel: 3, Deccel: 5}
	s.StepLimits = planner.StepLimits{Speed: 100, Accel: 3, Deccel: 4}
	s.SampleInterval = 0.1
	s.PlotWidthCm = 16
	s.PlotHeightCm = 24
	s.CanInterface = "can0"
	s.CanID = 0x200
	s.RequestTopic = REQUEST_TOPIC
	s.PlanTopic = PLAN_TOPIC
}

func (s *MotorplanSettings) Validate() error {
	err := multierr.Combine(s.Limits.Validate(), s.StepLimits.Validate())
	if !(s.SampleInterval > 0) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidSetting, "sample_interval must be positive, got %g", s.SampleInterval))
	}
	if !(s.PlotWidthCm > 0) || !(s.PlotHeightCm > 0) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidSetting, "plot size must be positive, got %gx%g", s.PlotWidthCm, s.PlotHeightCm))
	}
	if s.CanID > 0x7ff {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidSetting, "can_id %#x is not a standard id", s.CanID))
	}
	return err
}

func (s *MotorplanSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.MOTORPLAN_SETTINGS)
	if err != nil {
		utils.Logde(err)
		return false
	}

	err = json.Unmarshal(data, s)
	if err != nil {
		utils.Loge(errors.Wrap(err, "could not parse settings"))
		return false
	}

	s.ApplyLogLevel()

	return true
}

func (s *MotorplanSettings) LoadWithRetries(tries int) {
	for range tries {
		if s.Load() {
			return
		}
		time.Sleep(1 * time.Second)
	}
	s.Save()
}

func (s *MotorplanSettings) Save() {
	utils.Loge(s.Persist())
}

// Persist is Save for callers that handle the error themselves.
func (s *MotorplanSettings) Persist() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode settings")
	}
	return errors.Wrap(params.PutParam(params.MOTORPLAN_SETTINGS, data), "could not save settings")
}

// Set assigns a single setting from its json name. Nested fields use a dot,
// e.g. limits.accel. A new log level takes effect on ApplyLogLevel.
func (s *MotorplanSettings) Set(key, value string) error {
	switch key {
	case "log_level":
		s.LogLevel = value
		return nil
	case "can_interface":
		s.CanInterface = value
		return nil
	case "request_topic":
		s.RequestTopic = value
		return nil
	case "plan_topic":
		s.PlanTopic = value
		return nil
	case "can_id":
		v, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return errors.Wrapf(ErrInvalidSetting, "%s: %v", key, err)
		}
		s.CanID = uint32(v)
		return nil
	}

	if target := s.floatField(key); target != nil {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidSetting, "%s: %v", key, err)
		}
		*target = v
		return nil
	}
	if target := s.intField(key); target != nil {
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidSetting, "%s: %v", key, err)
		}
		*target = v
		return nil
	}
	return errors.Wrap(ErrUnknownSetting, key)
}

func (s *MotorplanSettings) floatField(key string) *float64 {
	switch key {
	case "limits.speed":
		return &s.Limits.Speed
	case "limits.accel":
		return &s.Limits.Accel
	case "limits.deccel":
		return &s.Limits.Deccel
	case "sample_interval":
		return &s.SampleInterval
	case "plot_width_cm":
		return &s.PlotWidthCm
	case "plot_height_cm":
		return &s.PlotHeightCm
	}
	return nil
}

func (s *MotorplanSettings) intField(key string) *int64 {
	switch key {
	case "step_limits.speed":
		return &s.StepLimits.Speed
	case "step_limits.accel":
		return &s.StepLimits.Accel
	case "step_limits.deccel":
		return &s.StepLimits.Deccel
	}
	return nil
}

// ApplyLogLevel sets the default slog level from LogLevel.
func (s *MotorplanSettings) ApplyLogLevel() {
	slog.SetLogLoggerLevel(LogLevel(s.LogLevel))
}

func LogLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
