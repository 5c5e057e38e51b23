package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/metrics"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
)

// maxVoteAttempts bounds the read-decide-write retry loop before a
// conflict is surfaced to the caller.
const maxVoteAttempts = 3

type VoteSvc struct {
	votes     VoteRepository
	incidents IncidentRepository
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewVoteService(votes VoteRepository, incidents IncidentRepository, m *metrics.Metrics, logger *slog.Logger) *VoteSvc {
	return &VoteSvc{votes: votes, incidents: incidents, metrics: m, logger: logger}
}

// Vote applies one toggle transition for (incidentID, userID):
//
//	none      --upvote-->   upvoted    (insert)
//	upvoted   --upvote-->   none       (delete, retract)
//	upvoted   --downvote--> downvoted  (switch in place)
//
// and symmetrically for downvotes. Each write is conditional on the
// state observed by the preceding read; when a concurrent toggle wins
// the race the cycle retries from a fresh read.
func (s *VoteSvc) Vote(ctx context.Context, incidentID, userID uuid.UUID, requested domain.VoteType) (domain.VoteResult, error) {
	const op = "service.Vote.Vote"

	if requested != domain.VoteUp && requested != domain.VoteDown {
		return domain.VoteResult{}, fmt.Errorf("%s: vote type must be upvote or downvote: %w", op, e.ErrInvalidInput)
	}
	if _, err := s.incidents.Get(ctx, incidentID); err != nil {
		return domain.VoteResult{}, e.Wrap(op+": resolve incident", err)
	}

	for attempt := 1; attempt <= maxVoteAttempts; attempt++ {
		result, ok, err := s.transition(ctx, incidentID, userID, requested)
		if err != nil {
			return domain.VoteResult{}, err
		}
		if ok {
			s.metrics.VotesByOutcome.WithLabelValues(string(result.Outcome)).Inc()
			return result, nil
		}

		s.logger.Debug("vote transition lost race, retrying",
			slog.String("incident_id", incidentID.String()),
			slog.String("user_id", userID.String()),
			slog.Int("attempt", attempt),
		)
	}

	s.metrics.VoteConflicts.Inc()
	return domain.VoteResult{}, fmt.Errorf("%s: %w", op, e.ErrConflict)
}

// transition runs one read-decide-write cycle. ok is false when the
// conditional write observed a state change since the read.
func (s *VoteSvc) transition(ctx context.Context, incidentID, userID uuid.UUID, requested domain.VoteType) (domain.VoteResult, bool, error) {
	current, err := s.votes.Get(ctx, incidentID, userID)

	switch {
	case errors.Is(err, e.ErrNotFound):
		inserted, err := s.votes.InsertIfAbsent(ctx, &domain.Vote{
			IncidentID: incidentID,
			UserID:     userID,
			Type:       requested,
		})
		if err != nil {
			// A concurrent insert can surface as a unique violation
			// instead of a silent no-op; treat it as a lost race.
			if errors.Is(err, e.ErrUniqueViolation) {
				return domain.VoteResult{}, false, nil
			}
			return domain.VoteResult{}, false, err
		}
		if !inserted {
			return domain.VoteResult{}, false, nil
		}
		return domain.VoteResult{State: stateFor(requested), Outcome: domain.OutcomeCast}, true, nil

	case err != nil:
		return domain.VoteResult{}, false, err

	case current.Type == requested:
		deleted, err := s.votes.DeleteMatching(ctx, incidentID, userID, requested)
		if err != nil {
			return domain.VoteResult{}, false, err
		}
		if !deleted {
			return domain.VoteResult{}, false, nil
		}
		return domain.VoteResult{State: domain.VoteStateNone, Outcome: domain.OutcomeRetracted}, true, nil

	default:
		switched, err := s.votes.SwitchType(ctx, incidentID, userID, current.Type, requested)
		if err != nil {
			return domain.VoteResult{}, false, err
		}
		if !switched {
			return domain.VoteResult{}, false, nil
		}
		return domain.VoteResult{State: stateFor(requested), Outcome: domain.OutcomeSwitched}, true, nil
	}
}

func stateFor(t domain.VoteType) domain.VoteState {
	if t == domain.VoteUp {
		return domain.VoteStateUpvoted
	}
	return domain.VoteStateDownvoted
}
