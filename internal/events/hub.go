// Package events fans item change events out to in-process subscribers.
package events

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// DefaultBufferSize is the per-subscriber queue length.
const DefaultBufferSize = 16

// Prometheus metrics.
var (
	eventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_events_published_total",
			Help: "Total number of item events published",
		},
		[]string{"type"},
	)

	eventsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "item_events_dropped_total",
			Help: "Total number of item events dropped for slow subscribers",
		},
	)
)

// Hub delivers published events to every current subscriber.
// Publish never blocks: a subscriber whose queue is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	bufferSize  int
	closed      bool
	logger      *zap.Logger
}

// Subscription receives events on C until it is closed.
type Subscription struct {
	C <-chan model.ItemEvent

	ch   chan model.ItemEvent
	hub  *Hub
	once sync.Once
}

// NewHub creates a new Hub. A non-positive bufferSize uses DefaultBufferSize.
func NewHub(logger *zap.Logger, bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Hub{
		subscribers: make(map[*Subscription]struct{}),
		bufferSize:  bufferSize,
		logger:      logger,
	}
}

// Subscribe registers a new subscriber. Subscribing to a closed hub returns
// a subscription whose channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan model.ItemEvent, h.bufferSize)
	sub := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.once.Do(func() { close(ch) })
		return sub
	}

	h.subscribers[sub] = struct{}{}
	return sub
}

// Close unregisters the subscription and closes its channel.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	s.closeLocked()
}

func (s *Subscription) closeLocked() {
	s.once.Do(func() {
		delete(s.hub.subscribers, s)
		close(s.ch)
	})
}

// Publish sends event to all subscribers without blocking.
func (h *Hub) Publish(event model.ItemEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	eventsPublishedTotal.WithLabelValues(event.Type).Inc()

	for sub := range h.subscribers {
		select {
		case sub.ch <- event:
		default:
			eventsDroppedTotal.Inc()
			h.logger.Warn("dropping item event for slow subscriber",
				zap.String("type", event.Type),
				zap.Int64("item_id", event.ItemID),
			)
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers)
}

// Close closes every subscription. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for sub := range h.subscribers {
		sub.closeLocked()
	}
}
