package notify

import (
	"context"

	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/metrics"
	"go.uber.org/zap"
)

// Deliverer is the worker side of dispatch. Device delivery is out of scope,
// so it logs the notification.
type Deliverer struct {
	log *zap.Logger
}

func NewDeliverer(log *zap.Logger) *Deliverer {
	return &Deliverer{log: logger.OrNop(log)}
}

func (d *Deliverer) Deliver(_ context.Context, event kafka.NotificationEvent) error {
	kind, _ := event.Data["type"].(string)
	d.log.Info("deliver notification",
		zap.String("identifier", event.Identifier),
		zap.String("type", kind),
		zap.String("title", event.Title),
		zap.Time("sent_at", event.SentAt),
	)
	metrics.NotificationsDelivered.Inc()
	return nil
}
