package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter. A nil logger means slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Interface != "" {
		attrs = append(attrs, slog.String("iface", event.Interface))
	}

	switch {
	case event.Raw != nil:
		attrs = append(attrs, slog.String("raw", event.Raw.Kind.String()))
		if event.Raw.ReasonName != "" {
			attrs = append(attrs, slog.String("reason", event.Raw.ReasonName))
		}
		if event.Raw.Address != "" {
			attrs = append(attrs, slog.String("addr", event.Raw.Address))
		}
		if event.Raw.Stale {
			attrs = append(attrs, slog.Bool("stale", true))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Lifecycle != nil:
		attrs = append(attrs, slog.String("event", event.Lifecycle.Kind.String()))
		if event.Lifecycle.Address != "" {
			attrs = append(attrs, slog.String("addr", event.Lifecycle.Address))
		}
		if event.Lifecycle.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Lifecycle.Reason))
		}
	case event.Retry != nil:
		attrs = append(attrs,
			slog.String("action", event.Retry.Action.String()),
			slog.Int("attempt", event.Retry.Attempt),
			slog.Int("max_retries", event.Retry.MaxRetries),
		)
		if event.Retry.Delay > 0 {
			attrs = append(attrs, slog.Duration("delay", event.Retry.Delay))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
			slog.Bool("fatal", event.Error.Fatal),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
