package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/staconn/staconn-go/pkg/connection"
)

type connectFlags struct {
	timeout time.Duration
	hold    time.Duration
	faults  faults
}

func newConnectCommand(g *globalFlags) *cobra.Command {
	var f connectFlags

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect, print the acquired address, then disconnect",
		Long: `Connect to the configured network and wait for an address.

The address, netmask and gateway are printed once the station is connected.
The link is then held for --hold (or until interrupted) and torn down with a
requested disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

			st, err := openStation(cfg, logger, f.faults)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runConnect(ctx, cmd.OutOrStdout(), st.ctrl, f)
		},
	}

	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, "Time to wait for an address")
	cmd.Flags().DurationVar(&f.hold, "hold", 0, "Keep the link up this long before disconnecting (-1 waits for a signal)")
	cmd.Flags().IntVar(&f.faults.failures, "fail", 0, "Fail this many association attempts")
	cmd.Flags().StringVar(&f.faults.reason, "fail-reason", "NO_AP_FOUND", "Disconnect reason for failed attempts")

	return cmd
}

// errConnectionLost reports a session that ended on its own while held.
var errConnectionLost = errors.New("connection lost")

func runConnect(ctx context.Context, out io.Writer, ctrl *connection.Controller, f connectFlags) error {
	// Watch the whole session so a loss during the hold is reported as the
	// event that actually ended it.
	ended := make(chan connection.Event, 1)
	watch := ctrl.Subscribe(func(ev connection.Event) {
		if !connection.IsTerminal(ev) {
			return
		}
		select {
		case ended <- ev:
		default:
		}
	})
	defer watch.Close()

	waitCtx, cancel := context.WithTimeout(ctx, f.timeout)
	info, err := connection.ConnectAndWait(waitCtx, ctrl)
	cancel()
	if err != nil {
		if ctrl.Phase().Active() {
			_ = ctrl.Disconnect()
		}
		return err
	}

	fmt.Fprintln(out, "Connected")
	fmt.Fprintf(out, "  IP:      %s\n", info.IP)
	fmt.Fprintf(out, "  Netmask: %s\n", info.Netmask)
	fmt.Fprintf(out, "  Gateway: %s\n", info.Gateway)
	fmt.Fprintf(out, "  Session: %s\n", ctrl.SessionID())

	var holdDone <-chan time.Time
	switch {
	case f.hold < 0:
	case f.hold > 0:
		timer := time.NewTimer(f.hold)
		defer timer.Stop()
		holdDone = timer.C
	default:
		closed := make(chan time.Time)
		close(closed)
		holdDone = closed
	}

	select {
	case ev := <-ended:
		return reportLoss(out, ctrl, ev)
	case <-ctx.Done():
	case <-holdDone:
	}

	// The hold may have been cut short by a signal; the teardown still needs
	// a live context.
	teardownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !ctrl.Phase().Active() {
		select {
		case ev := <-ended:
			return reportLoss(out, ctrl, ev)
		case <-teardownCtx.Done():
			return fmt.Errorf("%w: no terminal event", errConnectionLost)
		}
	}

	ev, err := connection.WaitFor(teardownCtx, ctrl, ctrl.Disconnect, connection.IsTerminal)
	if err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	fmt.Fprintln(out, ev)
	return ctrl.Err()
}

func reportLoss(out io.Writer, ctrl *connection.Controller, ev connection.Event) error {
	fmt.Fprintln(out, ev)
	if err := ctrl.Err(); err != nil {
		return fmt.Errorf("%w: %w", errConnectionLost, err)
	}
	return fmt.Errorf("%w: %s", errConnectionLost, ev)
}
