// Command staconn-log is a tool for viewing and analyzing station connection
// trace files.
//
// Trace files are written by the connection controller when a trace file is
// configured (log.trace_file, or staconn --trace).
//
// Usage:
//
//	staconn-log <command> [flags] <file.stlog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show per-session statistics
//
// Examples:
//
//	# View all events
//	staconn-log view sta0.stlog
//
//	# View only retry decisions
//	staconn-log view --category retry sta0.stlog
//
//	# Export to CSV
//	staconn-log export --format csv -o sta0.csv sta0.stlog
//
//	# Extract one session
//	staconn-log filter --session 3f2a... -o session.stlog sta0.stlog
//
//	# Keep the sessions that lost their link, without late stack events
//	staconn-log filter --outcome unsolicited --skip-stale -o lost.stlog sta0.stlog
//
//	# Show statistics
//	staconn-log stats sta0.stlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/staconn/staconn-go/cmd/staconn-log/commands"
)

const usage = `staconn-log - Station Connection Trace Analyzer

Usage:
  staconn-log <command> [flags] <file.stlog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show per-session statistics

Use "staconn-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// tracePath returns the single positional argument or exits with usage.
func tracePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func newFlagSet(name, synopsis, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "staconn-log %s - %s\n\nUsage:\n  staconn-log %s %s\n\nFlags:\n", name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs
}

func runView(args []string) {
	fs := newFlagSet("view", "View trace file in human-readable format", "[flags] <file.stlog>")

	session := fs.String("session", "", "Filter by session ID")
	layer := fs.String("layer", "", "Filter by layer (link, address, controller)")
	category := fs.String("category", "", "Filter by category (raw, state, lifecycle, retry, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	filter := commands.ViewFilter{SessionID: *session}

	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export trace file to JSON or CSV format", "[flags] <file.stlog>")

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunExport(path, *format, *output, os.Stdout); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter trace file and write to new file", "[flags] <file.stlog>")

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	iface := fs.String("iface", "", "Filter by interface name")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	layer := fs.String("layer", "", "Filter by layer (link, address, controller)")
	category := fs.String("category", "", "Filter by category (raw, state, lifecycle, retry, error)")
	reasons := fs.String("reason", "", "Keep link losses and retry decisions with these reasons (names or codes, comma separated)")
	retry := fs.String("retry", "", "Keep retry decisions with this action (reattempt, suppressed, exhausted)")
	outcomes := fs.String("outcome", "", "Keep sessions that ended this way (open, failed, requested, unsolicited; comma separated)")
	skipStale := fs.Bool("skip-stale", false, "Drop stack events that arrived after their session ended")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		Interface: *iface,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Layer:     *layer,
		Category:  *category,
		Reasons:   *reasons,
		Retry:     *retry,
		Outcomes:  *outcomes,
		SkipStale: *skipStale,
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show per-session statistics", "<file.stlog>")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := tracePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
