package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking-storefront/api"
	"github.com/Domenick1991/airbooking-storefront/config"
	"github.com/Domenick1991/airbooking-storefront/internal/apiclient"
	"github.com/Domenick1991/airbooking-storefront/internal/bootstrap"
	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/Domenick1991/airbooking-storefront/internal/session"
	"github.com/gin-gonic/gin"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sessions session.Sessions
	if cfg.Redis.Addr != "" {
		redisSessions := session.NewRedisSessions(cfg.Redis, cfg.Session.TTL())
		defer redisSessions.Close()
		if err := redisSessions.Ping(ctx); err != nil {
			logrus.Fatalf("connect redis: %v", err)
		}
		sessions = redisSessions
	} else {
		logrus.Warn("redis not configured, keeping browser sessions in memory")
		sessions = session.NewMemorySessions(cfg.Session.TTL())
	}

	opts := []api.HandlerOption{
		api.WithClientOptions(apiclient.WithTimeout(cfg.API.Timeout())),
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logrus.WithError(err).Warn("kafka unavailable, storefront events may be lost")
		}
		opts = append(opts, api.WithEvents(producer, cfg.Kafka.StorefrontTopic))
	}

	handler, err := api.NewStorefrontHandler(cfg.API.BaseURL, sessions, cfg.Session, opts...)
	if err != nil {
		logrus.Fatalf("init storefront: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	handler.Register(router.Group(""))

	logrus.WithField("api", cfg.API.BaseURL).Info("starting storefront")
	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
