package cli

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"pfeifer.dev/motorplan/params"
	ms "pfeifer.dev/motorplan/settings"
)

// Handle runs the requested sub command and exits. With no sub command it
// returns so the caller can start the daemon.
func Handle() {
	shouldExit := true
	cmd := NewCommand(os.Stdout, func() { shouldExit = false })

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}

	if shouldExit {
		os.Exit(0)
	}
}

// NewCommand builds the command tree. Output goes to w; daemon is called when
// no sub command was given.
func NewCommand(w io.Writer, daemon func()) *cli.Command {
	return &cli.Command{
		Name:  "motorplan",
		Usage: "Plan minimal time moves for a single axis, or start the planner daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "params",
				Usage:   "Directory the settings are persisted in",
				Sources: cli.EnvVars(params.PARAMS_PATH_ENV),
				Value:   params.ParamsPath,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			params.SetParamsPath(cmd.String("params"))
			ms.Settings.Load()
			return ctx, nil
		},
		Commands: []*cli.Command{
			planCommand(w),
			sampleCommand(w),
			plotCommand(w),
			rampCommand(w),
			streamCommand(w),
			settingsCommand(w),
			{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Explore plans and edit settings in the terminal",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					interactive()
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			daemon()
			return nil
		},
	}
}
