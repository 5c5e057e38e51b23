package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStatsRepo(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (p *StatsRepo) CityStats(ctx context.Context, city string, minutes int) (*domain.IncidentStats, error) {
	const op = "postgres.Stats.CityStats"

	if city == "" || minutes <= 0 || minutes > 10080 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
		SELECT type, severity, COUNT(*)
		FROM incidents
		WHERE city = $1 AND created_at >= NOW() - ($2 * INTERVAL '1 minute')
		GROUP BY type, severity
	`

	rows, err := p.pool.Query(ctx, query, city, minutes)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	stats := &domain.IncidentStats{
		City:       city,
		Minutes:    minutes,
		BySeverity: make(map[domain.Severity]int64),
		ByType:     make(map[domain.IncidentType]int64),
	}
	for rows.Next() {
		var typ domain.IncidentType
		var sev domain.Severity
		var n int64
		if err := rows.Scan(&typ, &sev, &n); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		stats.ByType[typ] += n
		stats.BySeverity[sev] += n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return stats, nil
}
