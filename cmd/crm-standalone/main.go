package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/crm-graphql/internal/config"
	"github.com/tuanvumaihuynh/crm-graphql/internal/event"
	"github.com/tuanvumaihuynh/crm-graphql/internal/http"
	"github.com/tuanvumaihuynh/crm-graphql/internal/log"
	"github.com/tuanvumaihuynh/crm-graphql/internal/relay"
	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/service"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/mq"
	"github.com/tuanvumaihuynh/crm-graphql/internal/telemetry"
	"github.com/tuanvumaihuynh/crm-graphql/internal/validation"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/cmdutil"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Relay    config.Relay
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}
	rules := validation.New(v)

	customerRepository := repository.NewCustomerRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)
	orderRepository := repository.NewOrderRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	customerService := service.NewCustomerService(logger, dbClient, rules, customerRepository, outboxMsgRepository)
	productService := service.NewProductService(logger, dbClient, productRepository, outboxMsgRepository)
	orderService := service.NewOrderService(logger, dbClient, customerRepository, productRepository, orderRepository, outboxMsgRepository)

	httpService := http.New(cfg.HTTP, logger, dbClient, customerService, productService, orderService)
	httpCleanup, err := httpService.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	eventService := event.New(logger, kafkaConsumer)
	eventCleanup, err := eventService.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running event service: %w", err)
	}
	logger.InfoContext(ctx, "event service started")

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		eventCleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := httpCleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
