package service

import (
	"context"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type IncidentService interface {
	Report(ctx context.Context, req domain.ReportIncidentRequest) (*domain.Incident, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	Stats(ctx context.Context, req domain.StatsRequest) (*domain.IncidentStats, error)
}

type VoteService interface {
	Vote(ctx context.Context, incidentID, userID uuid.UUID, requested domain.VoteType) (domain.VoteResult, error)
}

type CommentService interface {
	Add(ctx context.Context, req domain.AddCommentRequest) (*domain.CommentWithAuthor, error)
	List(ctx context.Context, incidentID uuid.UUID) ([]*domain.CommentWithAuthor, error)
}

type FeedService interface {
	Fetch(ctx context.Context, req domain.FeedRequest) (*domain.FeedPage, error)
}

type UserService interface {
	Register(ctx context.Context, req domain.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	Current(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Repository views the services depend on; satisfied by both the
// postgres and memory implementations.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	ListWindow(ctx context.Context, filter domain.IncidentFilter, offset, limit int) ([]*domain.Incident, error)
	Count(ctx context.Context, filter domain.IncidentFilter) (int64, error)
}

type VoteRepository interface {
	Get(ctx context.Context, incidentID, userID uuid.UUID) (*domain.Vote, error)
	InsertIfAbsent(ctx context.Context, vote *domain.Vote) (bool, error)
	DeleteMatching(ctx context.Context, incidentID, userID uuid.UUID, voteType domain.VoteType) (bool, error)
	SwitchType(ctx context.Context, incidentID, userID uuid.UUID, from, to domain.VoteType) (bool, error)
	ListByIncidentIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Vote, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Comment, error)
	CountByIncidentIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error)
}

type StatsRepository interface {
	CityStats(ctx context.Context, city string, minutes int) (*domain.IncidentStats, error)
}

// AlertEnqueuer hands emergency payloads to the fan-out pipeline.
type AlertEnqueuer interface {
	Enqueue(ctx context.Context, payload domain.AlertPayload) error
}

type Service struct {
	IncidentService IncidentService
	VoteService     VoteService
	CommentService  CommentService
	FeedService     FeedService
	UserService     UserService
}

func NewService(
	incidentService IncidentService,
	voteService VoteService,
	commentService CommentService,
	feedService FeedService,
	userService UserService,
) *Service {
	return &Service{
		IncidentService: incidentService,
		VoteService:     voteService,
		CommentService:  commentService,
		FeedService:     feedService,
		UserService:     userService,
	}
}
