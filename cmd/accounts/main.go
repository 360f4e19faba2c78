package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking-storefront/config"
	"github.com/Domenick1991/airbooking-storefront/internal/api/accounts_service_api"
	"github.com/Domenick1991/airbooking-storefront/internal/apiclient"
	"github.com/Domenick1991/airbooking-storefront/internal/auth"
	"github.com/Domenick1991/airbooking-storefront/internal/bootstrap"
	"github.com/Domenick1991/airbooking-storefront/internal/kafka"
	"github.com/Domenick1991/airbooking-storefront/internal/repository"
	"github.com/Domenick1991/airbooking-storefront/internal/service/accounts"
	"github.com/gin-gonic/gin"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logrus.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret)
	if err != nil {
		logrus.Fatalf("init auth: %v", err)
	}

	var opts []accounts.AccountServiceOption
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, accounts.WithEvents(producer, cfg.Kafka.StorefrontTopic))
	}

	accountService := accounts.NewAccountService(
		repository.NewProfileRepository(pool),
		repository.NewFavouriteRepository(pool),
		repository.NewAlertRepository(pool),
		accounts.NewAPIFlightLookup(cfg.API.BaseURL, apiclient.WithTimeout(cfg.API.Timeout())),
		opts...,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	accounts_service_api.NewServer(accountService, verifier).Register(router.Group(cfg.Accounts.PathPrefix))

	if err := bootstrap.Run(ctx, cfg.Accounts.Address, router); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
