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

type IncidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{pool: pool, logger: logger}
}

const incidentColumns = `
	id, title, description, type, severity, image, area,
	latitude, longitude, city, state, postcode, country,
	is_anonymous, reporter_id, created_at`

func (p *IncidentRepo) Create(ctx context.Context, incident *domain.Incident) error {
	const op = "postgres.Incident.Create"

	const query = `
		INSERT INTO incidents (id, title, description, type, severity, image, area,
			latitude, longitude, city, state, postcode, country,
			is_anonymous, reporter_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now().UTC()
	}

	_, err := p.pool.Exec(ctx, query,
		incident.ID,
		incident.Title,
		incident.Description,
		incident.Type,
		incident.Severity,
		incident.Image,
		incident.Area,
		incident.Location.Latitude,
		incident.Location.Longitude,
		incident.Location.City,
		incident.Location.State,
		incident.Location.Postcode,
		incident.Location.Country,
		incident.IsAnonymous,
		incident.ReporterID,
		incident.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

const getIncidentQuery = `SELECT` + incidentColumns + `
	FROM incidents WHERE id = $1`

func (p *IncidentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "postgres.Incident.Get"

	var inc domain.Incident
	err := p.pool.QueryRow(ctx, getIncidentQuery, id).Scan(
		&inc.ID,
		&inc.Title,
		&inc.Description,
		&inc.Type,
		&inc.Severity,
		&inc.Image,
		&inc.Area,
		&inc.Location.Latitude,
		&inc.Location.Longitude,
		&inc.Location.City,
		&inc.Location.State,
		&inc.Location.Postcode,
		&inc.Location.Country,
		&inc.IsAnonymous,
		&inc.ReporterID,
		&inc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &inc, nil
}

// filterClause builds the WHERE clause shared by ListWindow and Count.
func filterClause(filter domain.IncidentFilter) (string, []any) {
	clause := ` WHERE city = $1`
	args := []any{filter.City}
	if filter.Type != "" {
		args = append(args, filter.Type)
		clause += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		clause += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	return clause, args
}

// listWindowQuery builds the paged feed query for the filter.
func listWindowQuery(filter domain.IncidentFilter, offset, limit int) (string, []any) {
	clause, args := filterClause(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT%s FROM incidents%s ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`,
		incidentColumns, clause, len(args)-1, len(args))
	return query, args
}

func (p *IncidentRepo) ListWindow(ctx context.Context, filter domain.IncidentFilter, offset, limit int) ([]*domain.Incident, error) {
	const op = "postgres.Incident.ListWindow"

	query, args := listWindowQuery(filter, offset, limit)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var incidents []*domain.Incident
	for rows.Next() {
		var inc domain.Incident
		if err := rows.Scan(
			&inc.ID,
			&inc.Title,
			&inc.Description,
			&inc.Type,
			&inc.Severity,
			&inc.Image,
			&inc.Area,
			&inc.Location.Latitude,
			&inc.Location.Longitude,
			&inc.Location.City,
			&inc.Location.State,
			&inc.Location.Postcode,
			&inc.Location.Country,
			&inc.IsAnonymous,
			&inc.ReporterID,
			&inc.CreatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		incidents = append(incidents, &inc)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return incidents, nil
}

func (p *IncidentRepo) Count(ctx context.Context, filter domain.IncidentFilter) (int64, error) {
	const op = "postgres.Incident.Count"

	clause, args := filterClause(filter)
	query := `SELECT COUNT(*) FROM incidents` + clause

	var total int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return total, nil
}
