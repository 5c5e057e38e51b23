package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/metrics"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// feedPageSize is fixed; the feed contract exposes page numbers only.
const feedPageSize = 30

type FeedSvc struct {
	incidents IncidentRepository
	votes     VoteRepository
	comments  CommentRepository
	users     UserRepository
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewFeedService(
	incidents IncidentRepository,
	votes VoteRepository,
	comments CommentRepository,
	users UserRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) *FeedSvc {
	return &FeedSvc{
		incidents: incidents,
		votes:     votes,
		comments:  comments,
		users:     users,
		metrics:   m,
		logger:    logger,
	}
}

// Fetch builds one feed page: resolve the filtered incident window,
// then join votes, comment counts and reporter info in memory. Reads
// are not transactionally isolated from concurrent votes/comments;
// counts are a best-effort snapshot.
func (s *FeedSvc) Fetch(ctx context.Context, req domain.FeedRequest) (*domain.FeedPage, error) {
	const op = "service.Feed.Fetch"

	if req.City == "" {
		return nil, fmt.Errorf("%s: city required: %w", op, e.ErrInvalidInput)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	filter := domain.IncidentFilter{City: req.City}
	if req.Type != "" && req.Type != "all" {
		filter.Type = domain.IncidentType(req.Type)
	}
	if req.Severity != "" && req.Severity != "all" {
		filter.Severity = domain.Severity(req.Severity)
	}

	start := time.Now()
	defer s.metrics.ObserveFeed(start)

	total, err := s.incidents.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	feedPage := &domain.FeedPage{
		CurrentPage:    page,
		TotalPages:     int((total + feedPageSize - 1) / feedPageSize),
		TotalIncidents: total,
		Incidents:      []domain.FeedIncident{},
	}
	if total == 0 {
		return feedPage, nil
	}

	window, err := s.incidents.ListWindow(ctx, filter, (page-1)*feedPageSize, feedPageSize)
	if err != nil {
		return nil, err
	}
	if len(window) == 0 {
		// Page beyond range: empty list, correct totals.
		return feedPage, nil
	}

	ids := make([]uuid.UUID, 0, len(window))
	reporterIDs := make([]uuid.UUID, 0, len(window))
	for _, inc := range window {
		ids = append(ids, inc.ID)
		if !inc.IsAnonymous && inc.ReporterID != nil {
			reporterIDs = append(reporterIDs, *inc.ReporterID)
		}
	}

	var (
		votes         []*domain.Vote
		commentCounts map[uuid.UUID]int
		reporters     map[uuid.UUID]*domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		votes, err = s.votes.ListByIncidentIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		commentCounts, err = s.comments.CountByIncidentIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		reporters, err = s.users.GetByIDs(gctx, reporterIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type voteAgg struct {
		up, down           int
		votedUp, votedDown bool
	}
	aggs := make(map[uuid.UUID]*voteAgg, len(ids))
	for _, id := range ids {
		aggs[id] = &voteAgg{}
	}
	for _, v := range votes {
		agg, ok := aggs[v.IncidentID]
		if !ok {
			continue
		}
		switch v.Type {
		case domain.VoteUp:
			agg.up++
			if req.RequesterID != nil && v.UserID == *req.RequesterID {
				agg.votedUp = true
			}
		case domain.VoteDown:
			agg.down++
			if req.RequesterID != nil && v.UserID == *req.RequesterID {
				agg.votedDown = true
			}
		}
	}

	for _, inc := range window {
		agg := aggs[inc.ID]
		entry := domain.FeedIncident{
			Incident:       *inc,
			UpvotesCount:   agg.up,
			DownvotesCount: agg.down,
			CommentsCount:  commentCounts[inc.ID],
			IsUpvoted:      agg.votedUp,
			IsDownvoted:    agg.votedDown,
		}
		if !inc.IsAnonymous && inc.ReporterID != nil {
			if u, ok := reporters[*inc.ReporterID]; ok {
				entry.Reporter = &domain.Reporter{
					ID:         u.ID,
					FullName:   u.FullName,
					ProfilePic: u.ProfilePic,
					Email:      u.Email,
				}
			}
		}
		feedPage.Incidents = append(feedPage.Incidents, entry)
	}

	return feedPage, nil
}
