package public

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type IncidentReporter interface {
	Report(ctx context.Context, req domain.ReportIncidentRequest) (*domain.Incident, error)
	Stats(ctx context.Context, req domain.StatsRequest) (*domain.IncidentStats, error)
}

type VoteCaster interface {
	Vote(ctx context.Context, incidentID, userID uuid.UUID, requested domain.VoteType) (domain.VoteResult, error)
}

type Commenter interface {
	Add(ctx context.Context, req domain.AddCommentRequest) (*domain.CommentWithAuthor, error)
	List(ctx context.Context, incidentID uuid.UUID) ([]*domain.CommentWithAuthor, error)
}

type FeedFetcher interface {
	Fetch(ctx context.Context, req domain.FeedRequest) (*domain.FeedPage, error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents IncidentReporter
	Votes     VoteCaster
	Comments  Commenter
	Feed      FeedFetcher
}

func NewHandler(logger *slog.Logger, incidents IncidentReporter, votes VoteCaster, comments Commenter, feed FeedFetcher) *Handler {
	return &Handler{
		logger:    logger,
		Incidents: incidents,
		Votes:     votes,
		Comments:  comments,
		Feed:      feed,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ReportIncident", slog.String("remote", r.RemoteAddr))

	var req domain.ReportIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, failure("invalid JSON"))
		return
	}

	if userID, ok := middleware.UserID(r.Context()); ok {
		req.ReporterID = userID
	}

	l.Info("reporting incident",
		slog.String("type", string(req.Type)),
		slog.String("severity", string(req.Severity)),
		slog.String("city", req.City),
		slog.Bool("anonymous", req.IsAnonymous),
	)

	incident, err := h.Incidents.Report(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incident reported", slog.String("id", incident.ID.String()))
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Incident reported successfully.",
		"incident": incident,
	})
}

func (h *Handler) FetchIncidents(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("FetchIncidents", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	q := r.URL.Query()
	req := domain.FeedRequest{
		City:     q.Get("city"),
		Type:     q.Get("type"),
		Severity: q.Get("severity"),
		Page:     parseInt(q.Get("page"), 1),
	}
	if userID, ok := middleware.UserID(r.Context()); ok {
		req.RequesterID = &userID
	}

	page, err := h.Feed.Fetch(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("feed fetched",
		slog.String("city", req.City),
		slog.Int("page", page.CurrentPage),
		slog.Int("count", len(page.Incidents)),
		slog.Int64("total", page.TotalIncidents),
	)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"currentPage":    page.CurrentPage,
		"totalPages":     page.TotalPages,
		"totalIncidents": page.TotalIncidents,
		"incidents":      page.Incidents,
	})
}

func (h *Handler) VoteIncident(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("VoteIncident", slog.String("remote", r.RemoteAddr))

	incidentID, ok := h.incidentID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, failure("authentication required"))
		return
	}

	var req domain.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, failure("invalid JSON"))
		return
	}

	result, err := h.Votes.Vote(r.Context(), incidentID, userID, req.Type)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("vote toggled",
		slog.String("incident_id", incidentID.String()),
		slog.String("outcome", string(result.Outcome)),
	)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": voteMessage(result),
		"state":   result.State,
	})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AddComment", slog.String("remote", r.RemoteAddr))

	incidentID, ok := h.incidentID(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, failure("authentication required"))
		return
	}

	var req domain.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, failure("invalid JSON"))
		return
	}
	req.IncidentID = incidentID
	req.UserID = userID

	comment, err := h.Comments.Add(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("comment added", slog.String("incident_id", incidentID.String()), slog.String("comment_id", comment.ID.String()))
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"comment": comment,
	})
}

func (h *Handler) FetchComments(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("FetchComments", slog.String("remote", r.RemoteAddr))

	incidentID, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	comments, err := h.Comments.List(r.Context(), incidentID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"count":    len(comments),
		"comments": comments,
	})
}

func (h *Handler) IncidentStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("IncidentStats", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	req := domain.StatsRequest{
		City:    r.URL.Query().Get("city"),
		Minutes: parseInt(r.URL.Query().Get("minutes"), 60),
	}

	stats, err := h.Incidents.Stats(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (h *Handler) incidentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "incidentId")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid incident id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, failure("invalid incident id"))
		return uuid.Nil, false
	}
	return id, true
}

func voteMessage(result domain.VoteResult) string {
	switch result.Outcome {
	case domain.OutcomeCast:
		return "Vote cast."
	case domain.OutcomeRetracted:
		return "Vote retracted."
	case domain.OutcomeSwitched:
		return "Vote switched."
	default:
		return string(result.Outcome)
	}
}
