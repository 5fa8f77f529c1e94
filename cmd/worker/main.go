package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/notify"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	if !cfg.Kafka.Enabled() || cfg.Kafka.NotificationsTopic == "" {
		lg.Fatal("worker requires kafka.brokers and kafka.notifications_topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, lg)
	defer consumer.Close()

	deliverer := notify.NewDeliverer(lg)

	lg.Info("notification worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))
	if err := consumer.ConsumeNotifications(ctx, deliverer.Deliver); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("consumer stopped", zap.Error(err))
		return
	}
	lg.Info("notification worker stopped")
}
