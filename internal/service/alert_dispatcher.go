package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/relay"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"
)

// AlertPopper drains the alert queue; implemented by the Redis queue.
type AlertPopper interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.AlertPayload, error)
}

// AlertDispatcher moves emergency alerts from the queue to the
// in-process fan-out relay.
type AlertDispatcher struct {
	logger *slog.Logger
	queue  AlertPopper
	relay  *relay.Relay
}

func NewAlertDispatcher(logger *slog.Logger, queue AlertPopper, r *relay.Relay) *AlertDispatcher {
	return &AlertDispatcher{logger: logger, queue: queue, relay: r}
}

func (d *AlertDispatcher) Run(ctx context.Context) {
	d.logger.Info("alertDispatcher STARTED")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("alertDispatcher STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := d.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrAlertQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			d.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		d.logger.Info("broadcasting alert",
			slog.String("incident_id", payload.IncidentID.String()),
			slog.String("severity", string(payload.Severity)),
			slog.Int("subscribers", d.relay.SubscriberCount()),
		)
		d.relay.Broadcast(payload)
	}
}
