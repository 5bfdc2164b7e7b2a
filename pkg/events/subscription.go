package events

import (
	"sync/atomic"
)

// Subscription is a handle for a registered handler.
// Releasing it with Close unregisters the handler.
type Subscription struct {
	bus    *Bus
	ch     chan interface{}
	closed atomic.Bool
	done   chan struct{}
}

// Subscribe registers handler for messages published on topic.
//
// Messages whose dynamic type is not T are dropped with a warning. If the bus
// is already closed the returned subscription is closed as well.
func Subscribe[T any](b *Bus, topic string, handler func(T)) *Subscription {
	s := &Subscription{
		bus:  b,
		done: make(chan struct{}),
	}

	s.ch = b.sub(topic)
	if s.ch == nil {
		s.closed.Store(true)
		close(s.done)
		return s
	}

	go s.run(func(msg any) {
		v, ok := msg.(T)
		if !ok {
			b.logger.Warn("dropping message of unexpected type",
				"topic", topic, "payload_type", payloadType(msg))
			return
		}
		handler(v)
	})

	return s
}

// run moves messages from the bus channel into a private queue until the bus
// closes the channel. The handler runs on the queue's goroutine, so the bus
// loop never waits on a handler and a handler may subscribe, unsubscribe or
// publish without stalling it.
func (s *Subscription) run(deliver func(any)) {
	defer close(s.done)

	queue := NewOutbox(func(msg any) {
		if s.closed.Load() {
			return
		}
		deliver(msg)
	})

	for msg := range s.ch {
		if s.closed.Load() {
			continue
		}
		queue.Push(msg)
	}
	queue.Close()
}

// Close unregisters the subscription. It is idempotent and may be called from
// within the handler.
func (s *Subscription) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	// Unsub goes through the bus loop; the caller may be the handler itself.
	go s.bus.unsub(s.ch)
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	return s.closed.Load()
}

// Done returns a channel that is closed once every accepted message has been
// handled or skipped and the delivery goroutines have exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
