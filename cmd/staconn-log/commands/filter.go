package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/staconn/staconn-go/pkg/log"
	"github.com/staconn/staconn-go/pkg/netif"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	SessionID string
	Interface string
	TimeStart string
	TimeEnd   string
	Layer     string
	Category  string

	// Reasons is a comma separated list of disconnect reason names or codes.
	Reasons string
	// Retry selects retry decisions: reattempt, suppressed or exhausted.
	Retry string
	// Outcomes is a comma separated list of session outcomes.
	Outcomes  string
	SkipStale bool
}

// RunFilter filters the log file and writes matching events to a new file.
// It returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter := log.Filter{
		SessionID: opts.SessionID,
		Interface: opts.Interface,
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return 0, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return 0, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Layer != "" {
		l, err := ParseLayerFlag(opts.Layer)
		if err != nil {
			return 0, err
		}
		filter.Layer = &l
	}

	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return 0, err
		}
		filter.Category = &c
	}

	for _, name := range splitList(opts.Reasons) {
		r, err := netif.ParseDisconnectReason(name)
		if err != nil {
			return 0, err
		}
		filter.Reasons = append(filter.Reasons, uint16(r))
	}

	if opts.Retry != "" {
		a, err := ParseRetryFlag(opts.Retry)
		if err != nil {
			return 0, err
		}
		filter.RetryAction = &a
	}

	for _, name := range splitList(opts.Outcomes) {
		o, err := log.ParseOutcome(name)
		if err != nil {
			return 0, err
		}
		filter.Outcomes = append(filter.Outcomes, o)
	}
	filter.SkipStale = opts.SkipStale

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	if _, failed := logger.Stats(); failed > 0 {
		logger.Close()
		return count - failed, fmt.Errorf("failed to write %d events", failed)
	}
	return count, logger.Close()
}

// ParseRetryFlag parses a retry action name.
func ParseRetryFlag(s string) (log.RetryAction, error) {
	switch strings.ToLower(s) {
	case "reattempt":
		return log.RetryReattempt, nil
	case "suppressed", "roaming":
		return log.RetrySuppressed, nil
	case "exhausted":
		return log.RetryExhausted, nil
	default:
		return 0, fmt.Errorf("unknown retry action: %s (use reattempt, suppressed, exhausted)", s)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
