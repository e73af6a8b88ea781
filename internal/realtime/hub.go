// Package realtime holds the in-process distribution hub that fans
// channel events out to live websocket subscribers.
package realtime

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	"github.com/google/uuid"
)

// defaultBuffer is the per-subscription queue depth. A subscriber that
// falls this far behind starts losing events; the persisted store remains
// the source of truth and clients recover by refetching.
const defaultBuffer = 64

// Subscription is one live listener on a channel. Events arrive on C until
// the subscription is cancelled.
type Subscription struct {
	id uuid.UUID
	C  chan gateways.RealtimeEvent
}

// Hub is an in-memory, per-process event router keyed by channel id.
// Delivery is at-most-once per subscription and best-effort.
type Hub struct {
	mut         sync.RWMutex
	subscribers map[string]map[uuid.UUID]*Subscription
	logger      *slog.Logger
	dropped     atomic.Int64
}

// NewHub creates a Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[uuid.UUID]*Subscription),
		logger:      logger,
	}
}

// Ensure Hub implements the gateways.Broadcaster interface
var _ gateways.Broadcaster = (*Hub)(nil)

// Subscribe registers a listener on a channel. The returned cancel func is
// idempotent and closes the subscription's event stream.
func (h *Hub) Subscribe(channelID string) (*Subscription, func()) {
	h.mut.Lock()
	defer h.mut.Unlock()

	subs, ok := h.subscribers[channelID]
	if !ok {
		subs = make(map[uuid.UUID]*Subscription)
		h.subscribers[channelID] = subs
	}

	sub := &Subscription{
		id: uuid.New(),
		C:  make(chan gateways.RealtimeEvent, defaultBuffer),
	}
	subs[sub.id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mut.Lock()
			defer h.mut.Unlock()
			if subs, ok := h.subscribers[channelID]; ok {
				delete(subs, sub.id)
				if len(subs) == 0 {
					delete(h.subscribers, channelID)
				}
			}
			close(sub.C)
		})
	}
	return sub, cancel
}

// Broadcast fans the event out to every live subscriber of the channel.
// The send never blocks: a full subscriber queue drops the event for that
// subscriber only.
func (h *Hub) Broadcast(channelID string, event gateways.RealtimeEvent) {
	h.mut.RLock()
	defer h.mut.RUnlock()

	subs, ok := h.subscribers[channelID]
	if !ok {
		return
	}
	for _, sub := range subs {
		select {
		case sub.C <- event:
		default:
			h.dropped.Add(1)
			h.logger.Warn("Dropped realtime event for slow subscriber",
				slog.String("channel_id", channelID),
				slog.String("event_type", event.Type))
		}
	}
}

// Dropped reports the total number of events discarded for slow
// subscribers since startup.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// SubscriberCount reports the number of live subscriptions on a channel.
func (h *Hub) SubscriberCount(channelID string) int {
	h.mut.RLock()
	defer h.mut.RUnlock()
	return len(h.subscribers[channelID])
}
