package relay

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRelay() *Relay {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBroadcastDeliversToAllSubscribers(t *testing.T) {
	r := newTestRelay()

	id1, ch1 := r.Subscribe()
	id2, ch2 := r.Subscribe()
	defer r.Unsubscribe(id1)
	defer r.Unsubscribe(id2)

	require.Equal(t, 2, r.SubscriberCount())

	alert := domain.AlertPayload{IncidentID: uuid.New(), City: "mumbai"}
	r.Broadcast(alert)

	require.Equal(t, alert.IncidentID, (<-ch1).IncidentID)
	require.Equal(t, alert.IncidentID, (<-ch2).IncidentID)
}

func TestSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	r := newTestRelay()
	r.bufSize = 1

	id, ch := r.Subscribe()
	defer r.Unsubscribe(id)

	// Fill the buffer, then broadcast again; the second alert is dropped
	// and Broadcast returns immediately.
	first := domain.AlertPayload{IncidentID: uuid.New()}
	r.Broadcast(first)
	r.Broadcast(domain.AlertPayload{IncidentID: uuid.New()})

	require.Equal(t, first.IncidentID, (<-ch).IncidentID)
	select {
	case p, ok := <-ch:
		require.False(t, ok, "unexpected second alert %v", p)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	r := newTestRelay()

	id, ch := r.Subscribe()
	r.Unsubscribe(id)

	_, ok := <-ch
	require.False(t, ok)
	require.Equal(t, 0, r.SubscriberCount())

	// Idempotent.
	r.Unsubscribe(id)
}

func TestBroadcastWithNoSubscribers(t *testing.T) {
	r := newTestRelay()
	r.Broadcast(domain.AlertPayload{IncidentID: uuid.New()})
}
