package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/api"
	publichandler "github.com/mufaddal-lashkar/safirah-server/internal/api/handlers/http/public"
	userhandler "github.com/mufaddal-lashkar/safirah-server/internal/api/handlers/http/user"
	"github.com/mufaddal-lashkar/safirah-server/internal/config"
	"github.com/mufaddal-lashkar/safirah-server/internal/metrics"
	"github.com/mufaddal-lashkar/safirah-server/internal/relay"
	"github.com/mufaddal-lashkar/safirah-server/internal/service"
	"github.com/mufaddal-lashkar/safirah-server/internal/storage/object"
	"github.com/mufaddal-lashkar/safirah-server/internal/storage/postgres"
	"github.com/mufaddal-lashkar/safirah-server/internal/storage/redis"
	"github.com/mufaddal-lashkar/safirah-server/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	AlertQ     *redis.AlertQueue
	Relay      *relay.Relay
	Dispatcher *service.AlertDispatcher
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	alertQueue := redis.NewAlertQueue(redisClient.Client, cfg.Alerts.QueueKey)
	alertRelay := relay.New(logger)

	logger.Info("Initializing object storage")
	imageStore, err := object.NewImageStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}

	m := metrics.New()

	var alerts service.AlertEnqueuer
	if !cfg.Alerts.Disabled {
		alerts = alertQueue
	}

	services := service.NewService(
		service.NewIncidentService(storage.Incidents(), storage.Users(), storage.Stats(), alerts, m, logger),
		service.NewVoteService(storage.Votes(), storage.Incidents(), m, logger),
		service.NewCommentService(storage.Comments(), storage.Incidents(), storage.Users(), m),
		service.NewFeedService(storage.Incidents(), storage.Votes(), storage.Comments(), storage.Users(), m, logger),
		service.NewUserService(storage.Users(), cfg.Auth),
	)

	publicHandler := publichandler.NewHandler(logger, services.IncidentService, services.VoteService, services.CommentService, services.FeedService)
	userHandler := userhandler.NewHandler(logger, services.UserService, imageStore)

	httpServer := api.NewServer(cfg, logger, publicHandler, userHandler)
	logger.Info("Initialized server")

	dispatcher := service.NewAlertDispatcher(logger, alertQueue, alertRelay)

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		AlertQ:     alertQueue,
		Relay:      alertRelay,
		Dispatcher: dispatcher,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components shut down",
		slog.Duration("latency", time.Since(start)))
}
