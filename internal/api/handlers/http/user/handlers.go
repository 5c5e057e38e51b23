package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type UserAccounts interface {
	Register(ctx context.Context, req domain.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	Current(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type UploadPresigner interface {
	PresignUpload(ctx context.Context, userID uuid.UUID) (string, *url.URL, error)
}

type Handler struct {
	logger   *slog.Logger
	Accounts UserAccounts
	Uploads  UploadPresigner
}

func NewHandler(logger *slog.Logger, accounts UserAccounts, uploads UploadPresigner) *Handler {
	return &Handler{logger: logger, Accounts: accounts, Uploads: uploads}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("Register", slog.String("remote", r.RemoteAddr))

	var req domain.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, failure("invalid JSON"))
		return
	}

	if _, err := h.Accounts.Register(r.Context(), req); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("user registered", slog.String("email", req.Email))
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully, please login now.",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("Login", slog.String("remote", r.RemoteAddr))

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, failure("invalid JSON"))
		return
	}

	resp, err := h.Accounts.Login(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("user logged in", slog.String("user_id", resp.User.ID.String()))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   resp.Token,
		"user":    resp.User,
	})
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, failure("authentication required"))
		return
	}

	user, err := h.Accounts.Current(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// PresignUpload hands the client a short-lived PUT URL; the returned
// key becomes the report's imageRef once the upload completes.
func (h *Handler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, failure("authentication required"))
		return
	}

	key, uploadURL, err := h.Uploads.PresignUpload(r.Context(), userID)
	if err != nil {
		l.Error("presign failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, failure("internal error"))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"imageRef":  key,
		"uploadUrl": uploadURL.String(),
	})
}
