package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/staconn/staconn-go/pkg/log"
)

// RunExport exports the log file to the specified format. An empty output
// writes to w.
func RunExport(path, format, output string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "interface", "layer", "category", "ssid", "type", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		eventType, detail := summarize(event)
		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Interface,
			event.Layer.String(),
			event.Category.String(),
			event.SSID,
			eventType,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}

// summarize returns a type label and a one-line detail for tabular output.
func summarize(event log.Event) (string, string) {
	switch {
	case event.Raw != nil:
		switch {
		case event.Raw.Address != "":
			return event.Raw.Kind.String(), event.Raw.Address
		case event.Raw.Reason != 0:
			return event.Raw.Kind.String(), event.Raw.ReasonName
		default:
			return event.Raw.Kind.String(), event.Raw.BSSID
		}
	case event.StateChange != nil:
		return "state", event.StateChange.OldState + "->" + event.StateChange.NewState
	case event.Lifecycle != nil:
		if event.Lifecycle.Address != "" {
			return event.Lifecycle.Kind.String(), event.Lifecycle.Address
		}
		return event.Lifecycle.Kind.String(), event.Lifecycle.Reason
	case event.Retry != nil:
		return "retry", event.Retry.Action.String() + " " +
			strconv.Itoa(event.Retry.Attempt) + "/" + strconv.Itoa(event.Retry.MaxRetries)
	case event.Error != nil:
		return "error", event.Error.Message
	}
	return "unknown", ""
}
