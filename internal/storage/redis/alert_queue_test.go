package redis

import (
	"context"
	"testing"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *AlertQueue {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewAlertQueue(client, "alerts:test")
}

func TestAlertQueue_RoundTrip(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	in := domain.AlertPayload{
		IncidentID: uuid.New(),
		Type:       domain.IncidentEmergency,
		Severity:   domain.SeverityCritical,
		Title:      "sos pressed",
		City:       "mumbai",
		Latitude:   19.07,
		Longitude:  72.87,
		ReportedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, q.Enqueue(ctx, in))

	out, err := q.BRPop(ctx, time.Second)
	require.NoError(t, err)
	require.Equal(t, in.IncidentID, out.IncidentID)
	require.Equal(t, in.Type, out.Type)
	require.Equal(t, in.Severity, out.Severity)
	require.Equal(t, in.City, out.City)
}

func TestAlertQueue_FIFO(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	first := domain.AlertPayload{IncidentID: uuid.New()}
	second := domain.AlertPayload{IncidentID: uuid.New()}
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	out, err := q.BRPop(ctx, time.Second)
	require.NoError(t, err)
	require.Equal(t, first.IncidentID, out.IncidentID)

	out, err = q.BRPop(ctx, time.Second)
	require.NoError(t, err)
	require.Equal(t, second.IncidentID, out.IncidentID)
}

func TestAlertQueue_EmptyTimeout(t *testing.T) {
	q := newTestQueue(t)

	_, err := q.BRPop(context.Background(), 100*time.Millisecond)
	require.ErrorIs(t, err, e.ErrAlertQueueEmpty)
}
