package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"

	"github.com/google/uuid"
)

type CommentStore struct {
	mu       sync.RWMutex
	comments []domain.Comment
}

func NewCommentStore() *CommentStore {
	return &CommentStore{}
}

func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *CommentStore) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Comment
	for _, c := range s.comments {
		if c.IncidentID == incidentID {
			matched = append(matched, c)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) < 0
	})

	out := make([]*domain.Comment, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}

func (s *CommentStore) CountByIncidentIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	counts := make(map[uuid.UUID]int, len(ids))
	for _, c := range s.comments {
		if _, ok := wanted[c.IncidentID]; ok {
			counts[c.IncidentID]++
		}
	}
	return counts, nil
}
