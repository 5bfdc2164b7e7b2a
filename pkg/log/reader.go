package log

import (
	"errors"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects trace events. Zero fields match everything.
type Filter struct {
	SessionID string
	Interface string
	Layer     *Layer
	Category  *Category

	// TimeStart and TimeEnd bound the timestamp to [TimeStart, TimeEnd).
	TimeStart *time.Time
	TimeEnd   *time.Time

	// Reasons keeps link losses and retry decisions carrying one of these
	// disconnect reason codes. Other events are dropped when set.
	Reasons []uint16

	// RetryAction keeps only retry decisions with this action.
	RetryAction *RetryAction

	// SkipStale drops raw events that arrived after their session ended.
	SkipStale bool

	// Outcomes keeps whole sessions that ended one of these ways. Selecting
	// by outcome needs a first pass over the trace.
	Outcomes []Outcome
}

// Matches reports whether event satisfies the per-event criteria of f.
// Outcomes is a session property and is applied by Reader.
func (f *Filter) Matches(event Event) bool {
	switch {
	case f.SessionID != "" && event.SessionID != f.SessionID,
		f.Interface != "" && event.Interface != f.Interface,
		f.Layer != nil && event.Layer != *f.Layer,
		f.Category != nil && event.Category != *f.Category,
		f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart),
		f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd),
		f.SkipStale && event.Raw != nil && event.Raw.Stale:
		return false
	}

	if f.RetryAction != nil && (event.Retry == nil || event.Retry.Action != *f.RetryAction) {
		return false
	}
	if len(f.Reasons) > 0 {
		code, ok := DisconnectReason(event)
		if !ok || !slices.Contains(f.Reasons, code) {
			return false
		}
	}
	return true
}

// Reader streams events from a trace file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter

	// sessions holds the IDs admitted by filter.Outcomes; nil admits all.
	sessions map[string]bool
}

// NewReader opens a trace file for reading every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a trace file, returning only events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	var sessions map[string]bool
	if len(filter.Outcomes) > 0 {
		outcomes, err := SessionOutcomes(path)
		if err != nil {
			return nil, err
		}
		sessions = make(map[string]bool)
		for id, o := range outcomes {
			if slices.Contains(filter.Outcomes, o) {
				sessions[id] = true
			}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:     f,
		decoder:  NewDecoder(f),
		filter:   filter,
		sessions: sessions,
	}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.sessions != nil && !r.sessions[event.SessionID] {
			continue
		}
		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
