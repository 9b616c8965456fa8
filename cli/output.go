package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"pfeifer.dev/motorplan/planner"
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func row(label string, format string, args ...any) string {
	return labelStyle.Render(label) + fmt.Sprintf(format, args...)
}

func renderSummary(mv move, plan planner.PositionChangePlan) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%g -> %g", mv.initial.Position, mv.final.Position)),
		row("limits", "speed %g  accel %g  deccel %g", mv.limits.Speed, mv.limits.Accel, mv.limits.Deccel),
		row("direction", "%+d", plan.Sign),
		row("pre deccel", "%.4f", plan.TPreDeccel),
		row("accel", "%.4f", plan.Plan.TAccel),
		row("steady", "%.4f", plan.Plan.TSteady),
		row("deccel", "%.4f", plan.Plan.TDeccel),
		row("post accel", "%.4f", plan.TPostAccel),
		row("total", "%.4f", plan.TTotal()),
		row("max speed", "%.4f", plan.MaxSpeed(mv.limits, mv.initial)),
		row("final speed", "%.4f", plan.FinalSpeed(mv.limits, mv.initial)),
		row("final position", "%.4f", plan.Position(mv.limits, mv.initial)),
	}
	return strings.Join(lines, "\n")
}

func writeSamples(w io.Writer, samples []planner.Sample, initialPosition float64) error {
	if _, err := fmt.Fprintf(w, "%8s %8s %8s %10s\n", "t", "accel", "speed", "position"); err != nil {
		return err
	}
	for _, s := range samples {
		_, err := fmt.Fprintf(w, "%8.3f %8.3f %8.3f %10.3f\n", s.T, s.Accel, s.Speed, initialPosition+s.Displacement)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeRamp(w io.Writer, ramp planner.SpeedChangePlan, current int64) error {
	if _, err := fmt.Fprintf(w, "%d epochs, %d x %+d then %+d\n", ramp.Epochs(), ramp.AccelerationEpochs, ramp.Acceleration, ramp.ResidualEpoch); err != nil {
		return err
	}
	for epoch := int64(1); epoch <= ramp.Epochs(); epoch++ {
		if _, err := fmt.Fprintf(w, "%4d %6d\n", epoch, ramp.SpeedAt(epoch, current)); err != nil {
			return err
		}
	}
	return nil
}
