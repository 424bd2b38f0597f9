// Package journal provides the asynchronous audit publisher. Events are
// buffered on a bounded channel and drained to the store by a single worker
// goroutine, so command handlers never wait on journal I/O. When the buffer
// is full the event is dropped and logged rather than blocking the caller.
package journal

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"fulfillment/internal/core/domain/model/journal"
	"fulfillment/internal/core/ports"
)

// AsyncPublisher implements ports.JournalPublisher over a ports.JournalStore.
type AsyncPublisher struct {
	store  ports.JournalStore
	events chan journal.Event
	logger *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	done      chan struct{}
}

// NewAsyncPublisher creates a publisher with the given buffer size. Start
// must be called before the publisher delivers anything.
func NewAsyncPublisher(store ports.JournalStore, bufferSize int, logger *slog.Logger) *AsyncPublisher {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	return &AsyncPublisher{
		store:  store,
		events: make(chan journal.Event, bufferSize),
		logger: logger.With("component", "journal_publisher"),
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine draining the buffer to the store.
func (p *AsyncPublisher) Start() {
	p.startOnce.Do(func() {
		p.started.Store(true)
		go p.run()
	})
}

// Stop closes the intake and, when the worker is running, drains buffered
// events and waits for it to finish. Stopping a publisher that was never
// started only closes the intake; it does not wait for a worker that does
// not exist. Publish must not be called after Stop.
func (p *AsyncPublisher) Stop() {
	p.stopOnce.Do(func() {
		close(p.events)
	})

	if !p.started.Load() {
		return
	}
	<-p.done
}

// Publish enqueues the event for delivery. A full buffer drops the event.
func (p *AsyncPublisher) Publish(event journal.Event) {
	select {
	case p.events <- event:
	default:
		p.logger.Warn("journal buffer full, dropping event",
			"event_type", string(event.Type), "order_id", event.OrderID.String())
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)

	for event := range p.events {
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("failed to append journal event",
				"event_type", string(event.Type), "order_id", event.OrderID.String(), "error", err)
		}
	}
}
