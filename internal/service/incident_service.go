package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/metrics"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"
	"github.com/mufaddal-lashkar/safirah-server/pkg/validator"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type IncidentSvc struct {
	incidents IncidentRepository
	users     UserRepository
	stats     StatsRepository
	alerts    AlertEnqueuer
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewIncidentService(
	incidents IncidentRepository,
	users UserRepository,
	stats StatsRepository,
	alerts AlertEnqueuer,
	m *metrics.Metrics,
	logger *slog.Logger,
) *IncidentSvc {
	return &IncidentSvc{
		incidents: incidents,
		users:     users,
		stats:     stats,
		alerts:    alerts,
		metrics:   m,
		logger:    logger,
	}
}

func (s *IncidentSvc) Report(ctx context.Context, req domain.ReportIncidentRequest) (*domain.Incident, error) {
	const op = "service.Incident.Report"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, fieldErrors(err), e.ErrInvalidInput)
	}

	var reporterID *uuid.UUID
	if !req.IsAnonymous {
		if req.ReporterID == uuid.Nil {
			return nil, fmt.Errorf("%s: reporter id required for non-anonymous reports: %w", op, e.ErrInvalidInput)
		}
		if _, err := s.users.GetByID(ctx, req.ReporterID); err != nil {
			return nil, e.Wrap(op+": resolve reporter", err)
		}
		id := req.ReporterID
		reporterID = &id
	}

	inc := &domain.Incident{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Type:        req.Type,
		Severity:    req.Severity,
		Image:       req.ImageRef,
		Area:        strings.TrimSpace(req.Area),
		Location: domain.Location{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			City:      strings.TrimSpace(req.City),
			State:     strings.TrimSpace(req.State),
			Postcode:  req.Postcode,
			Country:   strings.TrimSpace(req.Country),
		},
		IsAnonymous: req.IsAnonymous,
		ReporterID:  reporterID,
	}

	if err := s.incidents.Create(ctx, inc); err != nil {
		return nil, err
	}
	s.metrics.IncidentsReported.Inc()

	s.maybeEnqueueAlert(ctx, inc)

	return inc, nil
}

// maybeEnqueueAlert hands emergency-grade incidents to the fan-out
// queue. A queue failure must not fail the report.
func (s *IncidentSvc) maybeEnqueueAlert(ctx context.Context, inc *domain.Incident) {
	if s.alerts == nil {
		return
	}
	if inc.Type != domain.IncidentEmergency && inc.Severity != domain.SeverityCritical {
		return
	}

	payload := domain.AlertPayload{
		IncidentID: inc.ID,
		Type:       inc.Type,
		Severity:   inc.Severity,
		Title:      inc.Title,
		City:       inc.Location.City,
		Latitude:   inc.Location.Latitude,
		Longitude:  inc.Location.Longitude,
		ReportedAt: inc.CreatedAt,
	}
	if err := s.alerts.Enqueue(ctx, payload); err != nil {
		s.logger.Error("alert enqueue failed",
			slog.String("incident_id", inc.ID.String()),
			slog.Any("error", err),
		)
	}
}

func (s *IncidentSvc) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return s.incidents.Get(ctx, id)
}

func (s *IncidentSvc) Stats(ctx context.Context, req domain.StatsRequest) (*domain.IncidentStats, error) {
	const op = "service.Incident.Stats"

	if req.Minutes == 0 {
		req.Minutes = 60
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, fieldErrors(err), e.ErrInvalidInput)
	}
	return s.stats.CityStats(ctx, req.City, req.Minutes)
}

// fieldErrors flattens validator output into "field tag" pairs for the
// error message returned to the caller.
func fieldErrors(err error) string {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}
