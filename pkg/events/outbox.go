package events

import (
	"sync"
)

// Outbox is an unbounded FIFO drained by a single goroutine.
//
// Push never blocks, which makes the Outbox safe to use while holding locks.
// Items are handed to the sink one at a time, in push order.
type Outbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool

	sink func(T)
	wake chan struct{}
	done chan struct{}
}

// NewOutbox creates an Outbox and starts its drain goroutine.
func NewOutbox[T any](sink func(T)) *Outbox[T] {
	o := &Outbox[T]{
		sink: sink,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go o.run()
	return o
}

// Push appends v to the queue. Returns false if the Outbox is closed.
func (o *Outbox[T]) Push(v T) bool {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return false
	}
	o.queue = append(o.queue, v)
	o.mu.Unlock()

	o.signal()
	return true
}

// Len returns the number of items not yet handed to the sink.
func (o *Outbox[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

// Close stops accepting items, waits until every queued item has been
// delivered and then stops the drain goroutine.
// Close must not be called from the sink.
func (o *Outbox[T]) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		<-o.done
		return
	}
	o.closed = true
	o.mu.Unlock()

	o.signal()
	<-o.done
}

func (o *Outbox[T]) signal() {
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *Outbox[T]) run() {
	defer close(o.done)

	for {
		o.mu.Lock()
		if len(o.queue) == 0 {
			closed := o.closed
			o.mu.Unlock()
			if closed {
				return
			}
			<-o.wake
			continue
		}
		batch := o.queue
		o.queue = nil
		o.mu.Unlock()

		for _, v := range batch {
			o.sink(v)
		}
	}
}
