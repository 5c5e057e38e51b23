// Package relay fans emergency alerts out to connected listeners. The
// registry is a guarded set; broadcast never blocks on a slow listener.
package relay

import (
	"log/slog"
	"sync"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
)

type Relay struct {
	mu      sync.RWMutex
	nextID  int
	subs    map[int]chan domain.AlertPayload
	logger  *slog.Logger
	bufSize int
}

func New(logger *slog.Logger) *Relay {
	return &Relay{
		subs:    make(map[int]chan domain.AlertPayload),
		logger:  logger,
		bufSize: 16,
	}
}

// Subscribe registers a listener and returns its id and channel. The
// channel is closed on Unsubscribe.
func (r *Relay) Subscribe() (int, <-chan domain.AlertPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	ch := make(chan domain.AlertPayload, r.bufSize)
	r.subs[id] = ch
	return id, ch
}

func (r *Relay) Unsubscribe(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.subs[id]; ok {
		delete(r.subs, id)
		close(ch)
	}
}

// Broadcast delivers the alert to every subscriber; a listener whose
// buffer is full misses the alert rather than stalling the relay.
func (r *Relay) Broadcast(alert domain.AlertPayload) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, ch := range r.subs {
		select {
		case ch <- alert:
		default:
			r.logger.Warn("alert dropped, slow subscriber",
				slog.Int("subscriber", id),
				slog.String("incident_id", alert.IncidentID.String()),
			)
		}
	}
}

func (r *Relay) SubscriberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
