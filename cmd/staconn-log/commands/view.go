// Package commands implements the staconn-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/staconn/staconn-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	SessionID string
	Layer     *log.Layer
	Category  *log.Category
}

func (f ViewFilter) filter() log.Filter {
	return log.Filter{
		SessionID: f.SessionID,
		Layer:     f.Layer,
		Category:  f.Category,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] iface LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenID(event.SessionID)

	var typeLabel string
	switch {
	case event.Raw != nil:
		typeLabel = event.Raw.Kind.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Lifecycle != nil:
		typeLabel = event.Lifecycle.Kind.String()
	case event.Retry != nil:
		typeLabel = "Retry " + event.Retry.Action.String()
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	iface := event.Interface
	if iface == "" {
		iface = "-"
	}

	fmt.Fprintf(w, "%s [session:%s] %-5s %-10s %s\n", ts, session, iface, event.Layer.String(), typeLabel)

	switch {
	case event.Raw != nil:
		formatRawDetails(w, event.Raw)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Lifecycle != nil:
		formatLifecycleDetails(w, event.Lifecycle)
	case event.Retry != nil:
		formatRetryDetails(w, event.Retry)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}
	if event.SSID != "" {
		fmt.Fprintf(w, "  SSID: %s\n", event.SSID)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatRawDetails(w io.Writer, raw *log.RawEvent) {
	if raw.BSSID != "" {
		fmt.Fprintf(w, "  BSSID: %s  Channel: %d\n", raw.BSSID, raw.Channel)
	}
	if raw.Reason != 0 {
		fmt.Fprintf(w, "  Reason: %s (%d)\n", raw.ReasonName, raw.Reason)
	}
	if raw.Address != "" {
		fmt.Fprintf(w, "  Address: %s", raw.Address)
		if raw.Netmask != "" {
			fmt.Fprintf(w, "/%s", raw.Netmask)
		}
		if raw.Gateway != "" {
			fmt.Fprintf(w, " gw %s", raw.Gateway)
		}
		if raw.AddrType != "" {
			fmt.Fprintf(w, " (%s)", raw.AddrType)
		}
		fmt.Fprintln(w)
	}
	if raw.Changed {
		fmt.Fprintln(w, "  Changed: true")
	}
	if raw.Stale {
		fmt.Fprintln(w, "  Stale: dropped")
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatLifecycleDetails(w io.Writer, lc *log.LifecycleEvent) {
	if lc.Address != "" {
		fmt.Fprintf(w, "  Address: %s/%s gw %s\n", lc.Address, lc.Netmask, lc.Gateway)
	}
	if lc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", lc.Reason)
	}
}

func formatRetryDetails(w io.Writer, r *log.RetryEvent) {
	fmt.Fprintf(w, "  Attempt: %d/%d\n", r.Attempt, r.MaxRetries)
	if r.Reason != 0 {
		fmt.Fprintf(w, "  Reason: %d\n", r.Reason)
	}
	if r.Delay > 0 {
		fmt.Fprintf(w, "  Delay: %s\n", formatDuration(r.Delay))
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
	if err.Fatal {
		fmt.Fprintln(w, "  Fatal: true")
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "link":
		return log.LayerLink, nil
	case "address", "addr":
		return log.LayerAddress, nil
	case "controller", "ctrl":
		return log.LayerController, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be link, address, or controller)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "raw":
		return log.CategoryRaw, nil
	case "state":
		return log.CategoryState, nil
	case "lifecycle":
		return log.CategoryLifecycle, nil
	case "retry":
		return log.CategoryRetry, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be raw, state, lifecycle, retry, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.filter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
