// Package interactive provides the interactive command-line interface
// for staconn.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/staconn/staconn-go/pkg/connection"
	"github.com/staconn/staconn-go/pkg/discovery"
	"github.com/staconn/staconn-go/pkg/events"
	"github.com/staconn/staconn-go/pkg/netif"
	"github.com/staconn/staconn-go/pkg/netif/sim"
)

// Stack is the fault injection surface of a simulated network stack.
// *sim.Adapter implements it.
type Stack interface {
	Drop(reason netif.DisconnectReason) bool
	Roam() bool
	FailAssociations(n int, reason netif.DisconnectReason)
	SetAssociateError(err error)
	Linked() bool
	Stats() sim.Stats
}

// Shell handles interactive mode for staconn.
type Shell struct {
	ctrl      *connection.Controller
	stack     Stack
	announcer *discovery.Announcer
	rl        *readline.Instance
	out       io.Writer
	sub       *events.Subscription
}

// New creates a new interactive shell. The announcer may be nil.
func New(ctrl *connection.Controller, stack Stack, announcer *discovery.Announcer) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "staconn> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(ctrl, stack, announcer, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(ctrl *connection.Controller, stack Stack, announcer *discovery.Announcer, out io.Writer) *Shell {
	s := &Shell{
		ctrl:      ctrl,
		stack:     stack,
		announcer: announcer,
		out:       out,
	}

	s.sub = ctrl.Subscribe(func(ev connection.Event) {
		fmt.Fprintf(s.out, "[event] %s\n", ev)
	})
	ctrl.OnPhaseChange(func(oldPhase, newPhase connection.Phase) {
		fmt.Fprintf(s.out, "[phase] %s -> %s\n", oldPhase, newPhase)
	})
	return s
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Exec(ctx, line) {
			cancel()
			return
		}
	}
}

func (s *Shell) close() {
	s.sub.Close()
	s.ctrl.OnPhaseChange(nil)
	if s.rl != nil {
		s.rl.Close()
	}
}

// Exec runs a single command line. It returns false when the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "connect", "c":
		s.cmdConnect(ctx)

	case "disconnect", "d":
		s.cmdDisconnect()

	case "drop":
		s.cmdDrop(args)

	case "roam":
		s.cmdRoam()

	case "fail":
		s.cmdFail(args)

	case "crash":
		s.cmdCrash(args)

	case "status", "s":
		s.cmdStatus()

	case "stats":
		s.cmdStats()

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
staconn Commands:
  Connection:
    connect                 - Start a connection session
    disconnect              - Request a disconnect
    status                  - Show controller state

  Fault Injection:
    drop [reason]           - Drop the link (default BEACON_TIMEOUT)
    roam                    - Hop to the next access point
    fail <n> [reason]       - Fail the next n associations (default NO_AP_FOUND)
    crash [off]             - Make association calls return an error
    stats                   - Show simulated stack counters

  General:
    help                    - Show this help
    quit                    - Exit

  Reasons are names (AUTH_FAIL) or 802.11 codes (15).`)
}

func (s *Shell) cmdConnect(ctx context.Context) {
	if err := s.ctrl.Connect(ctx); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdDisconnect() {
	if err := s.ctrl.Disconnect(); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdDrop(args []string) {
	reason := netif.ReasonBeaconTimeout
	if len(args) > 0 {
		r, err := netif.ParseDisconnectReason(args[0])
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		reason = r
	}
	if !s.stack.Drop(reason) {
		fmt.Fprintln(s.out, "Link is down")
	}
}

func (s *Shell) cmdRoam() {
	if !s.stack.Roam() {
		fmt.Fprintln(s.out, "Link is down")
	}
}

func (s *Shell) cmdFail(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: fail <n> [reason]")
		fmt.Fprintln(s.out, "  Example: fail 3 AUTH_FAIL")
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(s.out, "Invalid count: %s\n", args[0])
		return
	}

	reason := netif.ReasonNoAPFound
	if len(args) > 1 {
		r, err := netif.ParseDisconnectReason(args[1])
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		reason = r
	}

	s.stack.FailAssociations(n, reason)
	fmt.Fprintf(s.out, "Next %d association(s) fail with %s\n", n, reason)
}

func (s *Shell) cmdCrash(args []string) {
	if len(args) > 0 && strings.EqualFold(args[0], "off") {
		s.stack.SetAssociateError(nil)
		fmt.Fprintln(s.out, "Association errors cleared")
		return
	}
	s.stack.SetAssociateError(errors.New("simulated driver fault"))
	fmt.Fprintln(s.out, "Association calls now fail")
}

func (s *Shell) cmdStatus() {
	fmt.Fprintf(s.out, "Phase:    %s\n", s.ctrl.Phase())
	if id := s.ctrl.SessionID(); id != "" {
		fmt.Fprintf(s.out, "Session:  %s\n", id)
	}
	fmt.Fprintf(s.out, "Retries:  %d\n", s.ctrl.RetryCount())
	if b, ok := s.ctrl.BackoffState(); ok {
		fmt.Fprintf(s.out, "Backoff:  attempts=%d next=%s\n", b.Attempts, b.Next)
	}
	if s.ctrl.Phase() == connection.PhaseConnected {
		fmt.Fprintf(s.out, "Address:  %s\n", s.ctrl.IPInfo())
	}
	fmt.Fprintf(s.out, "Link:     %s\n", upDown(s.stack.Linked()))
	if s.announcer != nil {
		fmt.Fprintf(s.out, "mDNS:     %s\n", onOff(s.announcer.Active()))
	}
	if err := s.ctrl.Err(); err != nil {
		fmt.Fprintf(s.out, "Error:    %v\n", err)
	}
}

func (s *Shell) cmdStats() {
	st := s.stack.Stats()
	fmt.Fprintf(s.out, "Interfaces:   created=%d destroyed=%d\n", st.Created, st.Destroyed)
	fmt.Fprintf(s.out, "Driver:       starts=%d stops=%d\n", st.Starts, st.Stops)
	fmt.Fprintf(s.out, "Associations: %d\n", st.Associations)
	fmt.Fprintf(s.out, "Disconnects:  %d\n", st.DisconnectRequests)
	if st.Hostname != "" {
		fmt.Fprintf(s.out, "Hostname:     %s\n", st.Hostname)
	}
	if st.MAC != "" {
		fmt.Fprintf(s.out, "MAC:          %s\n", st.MAC)
	}
	fmt.Fprintf(s.out, "Static IP:    %t\n", st.Static)
}

func upDown(b bool) string {
	if b {
		return "up"
	}
	return "down"
}

func onOff(b bool) string {
	if b {
		return "announced"
	}
	return "withdrawn"
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("drop"),
		readline.PcItem("roam"),
		readline.PcItem("fail"),
		readline.PcItem("crash", readline.PcItem("off")),
		readline.PcItem("status"),
		readline.PcItem("stats"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
