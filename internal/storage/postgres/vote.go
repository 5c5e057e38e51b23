package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VoteRepo guards the one-vote-per-(incident,user) invariant with the
// votes_incident_user_key unique constraint. Every mutation is a single
// conditional statement, so a request cancelled mid-flight can never
// leave a duplicate row behind.
type VoteRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewVoteRepo(pool *pgxpool.Pool, logger *slog.Logger) *VoteRepo {
	return &VoteRepo{pool: pool, logger: logger}
}

func (p *VoteRepo) Get(ctx context.Context, incidentID, userID uuid.UUID) (*domain.Vote, error) {
	const op = "postgres.Vote.Get"

	const query = `
		SELECT id, incident_id, user_id, type, created_at
		FROM votes
		WHERE incident_id = $1 AND user_id = $2
	`

	var v domain.Vote
	err := p.pool.QueryRow(ctx, query, incidentID, userID).Scan(
		&v.ID,
		&v.IncidentID,
		&v.UserID,
		&v.Type,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return &v, nil
}

func (p *VoteRepo) InsertIfAbsent(ctx context.Context, vote *domain.Vote) (bool, error) {
	const op = "postgres.Vote.InsertIfAbsent"

	const query = `
		INSERT INTO votes (id, incident_id, user_id, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (incident_id, user_id) DO NOTHING
	`

	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	cmd, err := p.pool.Exec(ctx, query,
		vote.ID,
		vote.IncidentID,
		vote.UserID,
		vote.Type,
		vote.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}

	return cmd.RowsAffected() == 1, nil
}

func (p *VoteRepo) DeleteMatching(ctx context.Context, incidentID, userID uuid.UUID, voteType domain.VoteType) (bool, error) {
	const op = "postgres.Vote.DeleteMatching"

	const query = `
		DELETE FROM votes
		WHERE incident_id = $1 AND user_id = $2 AND type = $3
	`

	cmd, err := p.pool.Exec(ctx, query, incidentID, userID, voteType)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}

	return cmd.RowsAffected() == 1, nil
}

func (p *VoteRepo) SwitchType(ctx context.Context, incidentID, userID uuid.UUID, from, to domain.VoteType) (bool, error) {
	const op = "postgres.Vote.SwitchType"

	const query = `
		UPDATE votes
		SET type = $4
		WHERE incident_id = $1 AND user_id = $2 AND type = $3
	`

	cmd, err := p.pool.Exec(ctx, query, incidentID, userID, from, to)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}

	return cmd.RowsAffected() == 1, nil
}

func (p *VoteRepo) ListByIncidentIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Vote, error) {
	const op = "postgres.Vote.ListByIncidentIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
		SELECT id, incident_id, user_id, type, created_at
		FROM votes
		WHERE incident_id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(
			&v.ID,
			&v.IncidentID,
			&v.UserID,
			&v.Type,
			&v.CreatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		votes = append(votes, &v)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return votes, nil
}
