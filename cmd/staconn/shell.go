package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/staconn/staconn-go/cmd/staconn/interactive"
)

func newShellCommand(g *globalFlags) *cobra.Command {
	var autoConnect bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session with fault injection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}

			// Logging goes through a placeholder until readline owns the
			// terminal.
			out := &switchWriter{w: cmd.ErrOrStderr()}
			logger := cfg.Log.NewLogger(out)

			st, err := openStation(cfg, logger, faults{})
			if err != nil {
				return err
			}
			defer st.Close()

			sh, err := interactive.New(st.ctrl, st.adapter, st.announcer)
			if err != nil {
				return err
			}
			// Redirect log output through readline to avoid interfering with input
			out.set(sh.Stdout())

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if autoConnect {
				sh.Exec(ctx, "connect")
			}
			sh.Run(ctx, cancel)
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoConnect, "connect", false, "Connect on startup")

	return cmd
}
