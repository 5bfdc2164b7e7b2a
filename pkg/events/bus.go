package events

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"

	"github.com/cskr/pubsub"
)

// DefaultCapacity is the per-subscriber buffer size of a Bus.
const DefaultCapacity = 64

// ErrBusClosed is returned when publishing on a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// Bus is a topic based publish/subscribe hub.
// It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	ps     *pubsub.PubSub
	logger *slog.Logger
	closed bool
}

// NewBus creates a bus with DefaultCapacity.
func NewBus(logger *slog.Logger) *Bus {
	return NewBusWithCapacity(logger, DefaultCapacity)
}

// NewBusWithCapacity creates a bus whose subscriber channels buffer capacity messages.
func NewBusWithCapacity(logger *slog.Logger, capacity int) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{
		ps:     pubsub.New(capacity),
		logger: logger,
	}
}

// Publish delivers msg to every current subscriber of topic.
// It blocks until the bus has accepted the message.
func (b *Bus) Publish(topic string, msg any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	b.logger.Debug("publish", "topic", topic, "payload_type", payloadType(msg))
	b.ps.Pub(msg, topic)
	return nil
}

// Close shuts the bus down. All subscription channels are closed and their
// delivery goroutines exit. It is safe to call Close multiple times.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	b.ps.Shutdown()
}

// sub registers a new channel for topic. Returns nil if the bus is closed.
func (b *Bus) sub(topic string) chan interface{} {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	b.logger.Debug("subscribe", "topic", topic)
	return b.ps.Sub(topic)
}

func (b *Bus) unsub(ch chan interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	b.ps.Unsub(ch)
	b.logger.Debug("unsubscribe", "mode", "all")
}

func payloadType(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
