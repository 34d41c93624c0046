// Package hub provides a broadcast/fan-out helper built as an external
// collaborator of the channel core: many subscribers, each with their
// own channel.Channel, all fed from one Publish call.
package hub

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/conduit/channel"
)

// Hub fans a published value out to every current subscriber.
// Subscribers that fall behind are handled by TrySend: a slow
// subscriber's buffer filling up drops the value for that subscriber
// rather than stalling Publish for everyone else, which is the
// trade-off the core's Non-goals (no sender fairness, no priority
// scheduling) imply for a broadcast layer built on top of it.
type Hub[T any] struct {
	mu        sync.RWMutex
	listeners map[uuid.UUID]*channel.Channel[T]
	backlog   uint
	log       zerolog.Logger
}

// Option configures a Hub at construction.
type Option[T any] func(*Hub[T])

// WithLogger attaches a logger for subscribe/unsubscribe/close
// lifecycle events (internal/telemetry builds the logger itself).
func WithLogger[T any](log zerolog.Logger) Option[T] {
	return func(h *Hub[T]) { h.log = log }
}

// WithSubscriberBacklog sets each subscriber channel's buffer capacity.
// Default is 16.
func WithSubscriberBacklog[T any](n uint) Option[T] {
	return func(h *Hub[T]) { h.backlog = n }
}

// New creates an empty Hub.
func New[T any](opts ...Option[T]) *Hub[T] {
	h := &Hub[T]{
		listeners: make(map[uuid.UUID]*channel.Channel[T]),
		backlog:   16,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a new listener and returns its channel along with
// an id to later Unsubscribe it.
func (h *Hub[T]) Subscribe() (uuid.UUID, *channel.Channel[T]) {
	id := uuid.New()
	ch := channel.NewBuffered[T](h.backlog)

	h.mu.Lock()
	h.listeners[id] = ch
	h.mu.Unlock()

	h.log.Debug().Str("subscriber_id", id.String()).Msg("subscriber joined")
	return id, ch
}

// Unsubscribe removes and closes a listener's channel.
func (h *Hub[T]) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.listeners[id]
	delete(h.listeners, id)
	h.mu.Unlock()

	if ok {
		ch.Close()
		h.log.Debug().Str("subscriber_id", id.String()).Msg("subscriber left")
	}
}

// Publish broadcasts msg to every current subscriber, skipping any
// whose buffer is currently full.
func (h *Hub[T]) Publish(msg T) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		ch.TrySend(msg)
	}
}

// Close unsubscribes and closes every listener's channel.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	listeners := h.listeners
	h.listeners = make(map[uuid.UUID]*channel.Channel[T])
	h.mu.Unlock()

	for id, ch := range listeners {
		ch.Close()
		h.log.Debug().Str("subscriber_id", id.String()).Msg("subscriber closed by hub shutdown")
	}
}
