package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "passport/pkg/domain"
	audit "passport/pkg/platform/audit"
)

var (
	ErrBufferFull = errors.New("audit buffer full")
	ErrClosed     = errors.New("audit publisher closed")
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event audit.Event) error
	ListByPassport(ctx context.Context, passportID id.PassportID) ([]audit.Event, error)
}

// Publisher captures structured audit events. It is append-only. In the
// default sync mode Emit writes straight to the store; with WithAsyncBuffer
// a single worker drains a bounded queue and Emit never blocks.
type Publisher struct {
	store  Store
	logger *slog.Logger

	bufferSize int
	queue      chan audit.Event
	done       chan struct{}

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a queue of the
// given size. Sizes below one keep sync mode.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.bufferSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.queue = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		go p.drain()
	}
	return p
}

// Emit records an event, stamping it with the current time when unset.
//
// Errors: in async mode returns ErrBufferFull when the queue is saturated
// and ctx.Err() if the context is already done; ErrClosed after Close.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if p.queue == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

func (p *Publisher) List(ctx context.Context, passportID id.PassportID) ([]audit.Event, error) {
	return p.store.ListByPassport(ctx, passportID)
}

// Close stops accepting events and, in async mode, waits until every queued
// event has reached the store. It is safe to call more than once.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.queue != nil {
		close(p.queue)
	}
	p.mu.Unlock()

	if p.done != nil {
		<-p.done
	}
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.queue {
		if err := p.store.Append(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Error("failed to persist audit event",
				"action", event.Action,
				"passport_id", event.PassportID.String(),
				"error", err)
		}
	}
}
