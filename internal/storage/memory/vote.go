package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
)

type voteKey struct {
	incidentID uuid.UUID
	userID     uuid.UUID
}

// VoteStore keys the ledger by (incident, user), so a duplicate row is
// unrepresentable; the conditional ops mirror the postgres statements.
type VoteStore struct {
	mu    sync.Mutex
	votes map[voteKey]domain.Vote
}

func NewVoteStore() *VoteStore {
	return &VoteStore{votes: make(map[voteKey]domain.Vote)}
}

func (s *VoteStore) Get(ctx context.Context, incidentID, userID uuid.UUID) (*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.votes[voteKey{incidentID, userID}]
	if !ok {
		return nil, fmt.Errorf("memory.Vote.Get: %w", e.ErrNotFound)
	}
	return &v, nil
}

func (s *VoteStore) InsertIfAbsent(ctx context.Context, vote *domain.Vote) (bool, error) {
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{vote.IncidentID, vote.UserID}
	if _, exists := s.votes[key]; exists {
		return false, nil
	}
	s.votes[key] = *vote
	return true, nil
}

func (s *VoteStore) DeleteMatching(ctx context.Context, incidentID, userID uuid.UUID, voteType domain.VoteType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{incidentID, userID}
	v, ok := s.votes[key]
	if !ok || v.Type != voteType {
		return false, nil
	}
	delete(s.votes, key)
	return true, nil
}

func (s *VoteStore) SwitchType(ctx context.Context, incidentID, userID uuid.UUID, from, to domain.VoteType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{incidentID, userID}
	v, ok := s.votes[key]
	if !ok || v.Type != from {
		return false, nil
	}
	v.Type = to
	s.votes[key] = v
	return true, nil
}

func (s *VoteStore) ListByIncidentIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var votes []*domain.Vote
	for _, v := range s.votes {
		if _, ok := wanted[v.IncidentID]; ok {
			c := v
			votes = append(votes, &c)
		}
	}
	return votes, nil
}

// RowCount reports the ledger size for one pair; test helper.
func (s *VoteStore) RowCount(incidentID, userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.votes[voteKey{incidentID, userID}]; ok {
		return 1
	}
	return 0
}
