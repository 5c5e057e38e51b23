package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/metrics"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
)

type CommentSvc struct {
	comments  CommentRepository
	incidents IncidentRepository
	users     UserRepository
	metrics   *metrics.Metrics
}

func NewCommentService(comments CommentRepository, incidents IncidentRepository, users UserRepository, m *metrics.Metrics) *CommentSvc {
	return &CommentSvc{comments: comments, incidents: incidents, users: users, metrics: m}
}

func (s *CommentSvc) Add(ctx context.Context, req domain.AddCommentRequest) (*domain.CommentWithAuthor, error) {
	const op = "service.Comment.Add"

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%s: comment text required: %w", op, e.ErrInvalidInput)
	}

	if _, err := s.incidents.Get(ctx, req.IncidentID); err != nil {
		return nil, e.Wrap(op+": resolve incident", err)
	}
	author, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op+": resolve author", err)
	}

	comment := &domain.Comment{
		ID:         uuid.New(),
		IncidentID: req.IncidentID,
		UserID:     req.UserID,
		Text:       text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.metrics.CommentsAdded.Inc()

	return &domain.CommentWithAuthor{
		Comment:      *comment,
		AuthorName:   author.FullName,
		AuthorAvatar: author.ProfilePic,
	}, nil
}

// List returns the incident's comments newest-first with author display
// fields joined in.
func (s *CommentSvc) List(ctx context.Context, incidentID uuid.UUID) ([]*domain.CommentWithAuthor, error) {
	const op = "service.Comment.List"

	if _, err := s.incidents.Get(ctx, incidentID); err != nil {
		return nil, e.Wrap(op+": resolve incident", err)
	}

	comments, err := s.comments.ListByIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []*domain.CommentWithAuthor{}, nil
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	seen := make(map[uuid.UUID]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		authorIDs = append(authorIDs, c.UserID)
	}

	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		entry := &domain.CommentWithAuthor{Comment: *c}
		if a, ok := authors[c.UserID]; ok {
			entry.AuthorName = a.FullName
			entry.AuthorAvatar = a.ProfilePic
		}
		out = append(out, entry)
	}
	return out, nil
}
