package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestVoteStore_InsertIfAbsentRace(t *testing.T) {
	s := NewVoteStore()
	ctx := context.Background()
	incidentID := uuid.New()
	userID := uuid.New()

	const attempts = 32
	var inserted int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.InsertIfAbsent(ctx, &domain.Vote{
				IncidentID: incidentID,
				UserID:     userID,
				Type:       domain.VoteUp,
			})
			require.NoError(t, err)
			if ok {
				atomic.AddInt64(&inserted, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, inserted)
	require.Equal(t, 1, s.RowCount(incidentID, userID))
}

func TestVoteStore_ConditionalWrites(t *testing.T) {
	s := NewVoteStore()
	ctx := context.Background()
	incidentID := uuid.New()
	userID := uuid.New()

	ok, err := s.InsertIfAbsent(ctx, &domain.Vote{IncidentID: incidentID, UserID: userID, Type: domain.VoteUp})
	require.NoError(t, err)
	require.True(t, ok)

	// Delete conditioned on the wrong type is a no-op.
	ok, err = s.DeleteMatching(ctx, incidentID, userID, domain.VoteDown)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, s.RowCount(incidentID, userID))

	// Switch conditioned on the wrong source type is a no-op.
	ok, err = s.SwitchType(ctx, incidentID, userID, domain.VoteDown, domain.VoteUp)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.SwitchType(ctx, incidentID, userID, domain.VoteUp, domain.VoteDown)
	require.NoError(t, err)
	require.True(t, ok)

	v, err := s.Get(ctx, incidentID, userID)
	require.NoError(t, err)
	require.Equal(t, domain.VoteDown, v.Type)

	ok, err = s.DeleteMatching(ctx, incidentID, userID, domain.VoteDown)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.Get(ctx, incidentID, userID)
	require.ErrorIs(t, err, e.ErrNotFound)
}
