package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mufaddal-lashkar/safirah-server/internal/api/handlers/http/public"
	"github.com/mufaddal-lashkar/safirah-server/internal/api/handlers/http/system"
	"github.com/mufaddal-lashkar/safirah-server/internal/api/handlers/http/user"
	"github.com/mufaddal-lashkar/safirah-server/internal/config"
	"github.com/mufaddal-lashkar/safirah-server/internal/middleware"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, publicHandler *public.Handler, userHandler *user.Handler) *Server {
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, publicHandler, userHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, publicHandler *public.Handler, userHandler *user.Handler, systemHandler *system.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	requireAuth := middleware.RequireAuth(cfg.Auth.JWTSecret, logger)
	optionalAuth := middleware.OptionalAuth(cfg.Auth.JWTSecret, logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/users", func(ur chi.Router) {
			ur.Post("/register", userHandler.Register)
			ur.Post("/login", userHandler.Login)

			ur.Group(func(ar chi.Router) {
				ar.Use(requireAuth)
				ar.Get("/me", userHandler.CurrentUser)
			})
		})

		api.Route("/incidents", func(ir chi.Router) {
			ir.Group(func(ar chi.Router) {
				ar.Use(requireAuth)
				ar.Post("/report", publicHandler.ReportIncident)
				ar.Post("/vote/{incidentId}", publicHandler.VoteIncident)
				ar.Post("/comment/{incidentId}", publicHandler.AddComment)
			})

			ir.Group(func(or chi.Router) {
				or.Use(optionalAuth)
				or.Get("/fetch", publicHandler.FetchIncidents)
			})

			ir.Get("/comment/{incidentId}", publicHandler.FetchComments)
			ir.Get("/stats", publicHandler.IncidentStats)
		})

		api.Route("/uploads", func(pr chi.Router) {
			pr.Use(requireAuth)
			pr.Post("/presign", userHandler.PresignUpload)
		})

		api.Get("/health", systemHandler.SystemHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
