package notify

import (
	"context"
	"time"

	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher sends a local notification and returns its identifier.
type Dispatcher interface {
	Send(ctx context.Context, title, body string, data map[string]any) (string, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// KafkaDispatcher publishes notifications to a topic read by the worker.
type KafkaDispatcher struct {
	producer Producer
	topic    string
	newID    func() string
	now      func() time.Time
}

func NewKafkaDispatcher(producer Producer, topic string) *KafkaDispatcher {
	return &KafkaDispatcher{producer: producer, topic: topic, newID: uuid.NewString, now: time.Now}
}

func (d *KafkaDispatcher) Send(ctx context.Context, title, body string, data map[string]any) (string, error) {
	id := d.newID()
	event := kafka.NotificationEvent{
		Identifier: id,
		Title:      title,
		Body:       body,
		Data:       data,
		SentAt:     d.now().UTC(),
	}
	if err := d.producer.Publish(ctx, d.topic, id, event); err != nil {
		return "", err
	}
	return id, nil
}

// LogDispatcher only logs. Used when no broker is configured.
type LogDispatcher struct {
	log   *zap.Logger
	newID func() string
}

func NewLogDispatcher(log *zap.Logger) *LogDispatcher {
	return &LogDispatcher{log: logger.OrNop(log), newID: uuid.NewString}
}

func (d *LogDispatcher) Send(_ context.Context, title, body string, data map[string]any) (string, error) {
	id := d.newID()
	d.log.Info("local notification", zap.String("identifier", id), zap.String("title", title), zap.String("body", body), zap.Any("data", data))
	return id, nil
}

var (
	_ Dispatcher = (*KafkaDispatcher)(nil)
	_ Dispatcher = (*LogDispatcher)(nil)
)
