package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking-storefront/config"
	"github.com/Domenick1991/airbooking-storefront/internal/email"
	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/Domenick1991/airbooking-storefront/internal/notifications"
	"github.com/Domenick1991/airbooking-storefront/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if !cfg.Kafka.Enabled() {
		logrus.Fatal("kafka brokers and storefront_topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logrus.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.StorefrontTopic)
	defer consumer.Close()

	dispatcher := notifications.NewDispatcher(repository.NewProfileRepository(pool), email.NewSender())

	logrus.WithField("topic", cfg.Kafka.StorefrontTopic).Info("worker consuming")
	if err := consumer.Consume(ctx, dispatcher.Handle); err != nil {
		logrus.Fatalf("consumer stopped: %v", err)
	}
	logrus.Info("worker stopped")
}
