package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader MessageReader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return NewConsumerWithReader(kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}), log)
}

func NewConsumerWithReader(reader MessageReader, log *zap.Logger) *Consumer {
	return &Consumer{reader: reader, log: logger.OrNop(log)}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// ConsumeNotifications decodes every message as a NotificationEvent.
// Undecodable messages are logged and skipped.
func (c *Consumer) ConsumeNotifications(ctx context.Context, handler func(context.Context, NotificationEvent) error) error {
	return c.Consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		var event NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Warn("decode notification event", zap.ByteString("key", msg.Key), zap.Error(err))
			return nil
		}
		return handler(ctx, event)
	})
}
