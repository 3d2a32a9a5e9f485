package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/jacket-load-service/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/jacket-load-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/jacket-load-service/internal/adapter/kafka"
	"github.com/couchcryptid/jacket-load-service/internal/config"
	"github.com/couchcryptid/jacket-load-service/internal/observability"
	"github.com/couchcryptid/jacket-load-service/internal/register"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store := csvfile.New(cfg.RegisterFile)
	logger.Info("pressure register opened", "file", cfg.RegisterFile)

	// Kafka export of saved readings (feature-flagged via KAFKA_ENABLED).
	var publisher register.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		metrics.PublishEnabled.Set(1)
		logger.Info("kafka reading export enabled", "topic", cfg.ReadingsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka reading export disabled")
	}

	svc := register.New(store, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
