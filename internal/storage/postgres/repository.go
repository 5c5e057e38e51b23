package postgres

import (
	"context"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"

	"github.com/google/uuid"
)

type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	// ListWindow returns one page of the filtered set, ordered
	// created_at DESC with id ASC as the tie-break so pagination is
	// deterministic.
	ListWindow(ctx context.Context, filter domain.IncidentFilter, offset, limit int) ([]*domain.Incident, error)
	Count(ctx context.Context, filter domain.IncidentFilter) (int64, error)
}

// VoteRepository exposes only conditional mutations. Each call is a
// single atomic statement against the unique (incident_id, user_id)
// constraint; callers retry on a false return.
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

func (p *Postgres) Incidents() IncidentRepository { return p.IncidentRepo }
func (p *Postgres) Votes() VoteRepository         { return p.VoteRepo }
func (p *Postgres) Comments() CommentRepository   { return p.CommentRepo }
func (p *Postgres) Users() UserRepository         { return p.UserRepo }
func (p *Postgres) Stats() StatsRepository        { return p.StatsRepo }
