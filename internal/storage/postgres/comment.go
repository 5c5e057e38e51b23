package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCommentRepo(pool *pgxpool.Pool, logger *slog.Logger) *CommentRepo {
	return &CommentRepo{pool: pool, logger: logger}
}

func (p *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	const op = "postgres.Comment.Create"

	const query = `
		INSERT INTO comments (id, incident_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	_, err := p.pool.Exec(ctx, query,
		comment.ID,
		comment.IncidentID,
		comment.UserID,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *CommentRepo) ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Comment, error) {
	const op = "postgres.Comment.ListByIncident"

	const query = `
		SELECT id, incident_id, user_id, text, created_at
		FROM comments
		WHERE incident_id = $1
		ORDER BY created_at DESC, id ASC
	`

	rows, err := p.pool.Query(ctx, query, incidentID)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID,
			&c.IncidentID,
			&c.UserID,
			&c.Text,
			&c.CreatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return comments, nil
}

func (p *CommentRepo) CountByIncidentIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	const op = "postgres.Comment.CountByIncidentIDs"

	if len(ids) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	const query = `
		SELECT incident_id, COUNT(*)
		FROM comments
		WHERE incident_id = ANY($1)
		GROUP BY incident_id
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return counts, nil
}
