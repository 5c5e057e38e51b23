// Package memory holds RWMutex-guarded implementations of the storage
// repositories. They back the unit tests; production wiring uses the
// postgres package.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
)

type IncidentStore struct {
	mu        sync.RWMutex
	incidents map[uuid.UUID]domain.Incident
}

func NewIncidentStore() *IncidentStore {
	return &IncidentStore{incidents: make(map[uuid.UUID]domain.Incident)}
}

func (s *IncidentStore) Create(ctx context.Context, incident *domain.Incident) error {
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents[incident.ID] = *incident
	return nil
}

func (s *IncidentStore) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, fmt.Errorf("memory.Incident.Get: %w", e.ErrNotFound)
	}
	return &inc, nil
}

func (s *IncidentStore) ListWindow(ctx context.Context, filter domain.IncidentFilter, offset, limit int) ([]*domain.Incident, error) {
	matched := s.filtered(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	window := make([]*domain.Incident, 0, end-offset)
	for _, inc := range matched[offset:end] {
		c := inc
		window = append(window, &c)
	}
	return window, nil
}

func (s *IncidentStore) Count(ctx context.Context, filter domain.IncidentFilter) (int64, error) {
	return int64(len(s.filtered(filter))), nil
}

func (s *IncidentStore) filtered(filter domain.IncidentFilter) []domain.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Incident
	for _, inc := range s.incidents {
		if inc.Location.City != filter.City {
			continue
		}
		if filter.Type != "" && inc.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && inc.Severity != filter.Severity {
			continue
		}
		matched = append(matched, inc)
	}

	// Same canonical order as the postgres repo: created_at DESC, id ASC.
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) < 0
	})
	return matched
}
