package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"pfeifer.dev/motorplan/canbus"
	"pfeifer.dev/motorplan/planner"
	"pfeifer.dev/motorplan/plot"
	ms "pfeifer.dev/motorplan/settings"
)

func moveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Category: "States",
			Name:     "from",
			Usage:    "Initial position",
		},
		&cli.Float64Flag{
			Category: "States",
			Name:     "from-speed",
			Usage:    "Initial signed speed",
		},
		&cli.Float64Flag{
			Category: "States",
			Name:     "to",
			Usage:    "Final position",
		},
		&cli.Float64Flag{
			Category: "States",
			Name:     "to-speed",
			Usage:    "Final signed speed",
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "speed",
			Usage:    "Maximum speed, defaults to the saved limits",
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "accel",
			Usage:    "Maximum acceleration, defaults to the saved limits",
		},
		&cli.Float64Flag{
			Category: "Limits",
			Name:     "deccel",
			Usage:    "Maximum deceleration, defaults to the saved limits",
		},
	}
}

func sampleFlag() cli.Flag {
	return &cli.Float64Flag{
		Name:  "dt",
		Usage: "Sample interval, defaults to the saved sample interval",
	}
}

type move struct {
	initial planner.State
	final   planner.State
	limits  planner.Limits
}

func moveFromFlags(cmd *cli.Command) move {
	mv := move{
		initial: planner.State{Position: cmd.Float64("from"), Speed: cmd.Float64("from-speed")},
		final:   planner.State{Position: cmd.Float64("to"), Speed: cmd.Float64("to-speed")},
		limits:  ms.Settings.Limits,
	}
	if cmd.IsSet("speed") {
		mv.limits.Speed = cmd.Float64("speed")
	}
	if cmd.IsSet("accel") {
		mv.limits.Accel = cmd.Float64("accel")
	}
	if cmd.IsSet("deccel") {
		mv.limits.Deccel = cmd.Float64("deccel")
	}
	return mv
}

func (mv move) compute() (planner.PositionChangePlan, error) {
	plan, err := planner.Compute(mv.initial, mv.final, mv.limits)
	return plan, errors.Wrapf(err, "could not plan %g -> %g", mv.initial.Position, mv.final.Position)
}

func (mv move) sample(cmd *cli.Command) (planner.PositionChangePlan, []planner.Sample, error) {
	plan, err := mv.compute()
	if err != nil {
		return plan, nil, err
	}
	dt := ms.Settings.SampleInterval
	if cmd.IsSet("dt") {
		dt = cmd.Float64("dt")
	}
	samples, err := planner.SampleProfile(planner.Bind(plan, mv.limits, mv.initial), dt)
	return plan, samples, err
}

func planCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Compute a plan and print its phases",
		Flags: moveFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mv := moveFromFlags(cmd)
			plan, err := mv.compute()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, renderSummary(mv, plan))
			return err
		},
	}
}

func sampleCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "Print acceleration, speed and position on a fixed time grid",
		Flags: append(moveFlags(), sampleFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mv := moveFromFlags(cmd)
			_, samples, err := mv.sample(cmd)
			if err != nil {
				return err
			}
			return writeSamples(w, samples, mv.initial.Position)
		},
	}
}

func plotCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "plot",
		Usage: "Render the profile curves to a png",
		Flags: append(moveFlags(), sampleFlag(), &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "File to write the png to",
			Value:   "profile.png",
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mv := moveFromFlags(cmd)
			_, samples, err := mv.sample(cmd)
			if err != nil {
				return err
			}
			size := plot.Size{WidthCm: ms.Settings.PlotWidthCm, HeightCm: ms.Settings.PlotHeightCm}
			if err := plot.SavePNG(cmd.String("output"), samples, mv.initial.Position, size); err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "wrote %s\n", cmd.String("output"))
			return err
		},
	}
}

func rampCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "ramp",
		Usage: "Compute a discrete speed change, one line per epoch",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "current", Usage: "Current speed in steps per epoch"},
			&cli.Int64Flag{Name: "set", Usage: "Requested speed in steps per epoch"},
			&cli.Int64Flag{Category: "Limits", Name: "speed", Usage: "Maximum speed, defaults to the saved step limits"},
			&cli.Int64Flag{Category: "Limits", Name: "accel", Usage: "Maximum acceleration, defaults to the saved step limits"},
			&cli.Int64Flag{Category: "Limits", Name: "deccel", Usage: "Maximum deceleration, defaults to the saved step limits"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			limits := ms.Settings.StepLimits
			if cmd.IsSet("speed") {
				limits.Speed = cmd.Int64("speed")
			}
			if cmd.IsSet("accel") {
				limits.Accel = cmd.Int64("accel")
			}
			if cmd.IsSet("deccel") {
				limits.Deccel = cmd.Int64("deccel")
			}

			current := cmd.Int64("current")
			ramp, err := planner.ComputeSpeedChange(current, cmd.Int64("set"), limits)
			if err != nil {
				return err
			}
			return writeRamp(w, ramp, current)
		},
	}
}

func streamCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: "Send the sampled profile as CAN setpoint frames",
		Flags: append(moveFlags(), sampleFlag(),
			&cli.StringFlag{Name: "interface", Usage: "CAN interface, defaults to the saved interface"},
			&cli.StringFlag{Name: "id", Usage: "Frame id, defaults to the saved id"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mv := moveFromFlags(cmd)
			_, samples, err := mv.sample(cmd)
			if err != nil {
				return err
			}

			iface := ms.Settings.CanInterface
			if cmd.IsSet("interface") {
				iface = cmd.String("interface")
			}
			id := ms.Settings.CanID
			if cmd.IsSet("id") {
				v, err := strconv.ParseUint(cmd.String("id"), 0, 11)
				if err != nil {
					return errors.Wrap(err, "invalid frame id")
				}
				id = uint32(v)
			}

			writer, err := canbus.NewSocketCANWriter(ctx, iface)
			if err != nil {
				return err
			}
			defer writer.Close()

			if err := canbus.Stream(ctx, writer, id, samples); err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "sent %d setpoints on %s\n", len(samples), iface)
			return err
		},
	}
}
