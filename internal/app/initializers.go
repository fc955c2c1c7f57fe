package app

import (
	"context"
	"errors"
	"log"
	"mars-photos/internal/config"
	"mars-photos/internal/networker"
	"mars-photos/internal/presentation"
	"mars-photos/internal/publisher"
	"mars-photos/internal/publisher/queue"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const (
	envFile     = "main.env"
	serviceName = "mars-photos"
)

func InitApp() *PhotosApp {
	initEnv()

	cfg := initConfig()
	logger := initLogger(cfg)

	tp := initTracing(logger, cfg)

	policy, err := cfg.DecodePolicy()
	if err != nil {
		logger.Fatalw("Invalid decode error policy", "err", err)
	}

	fetcher := networker.NewNetworker(logger, cfg.Photos.BaseURL, cfg.Photos.Timeout)

	hub := presentation.NewHub(logger)
	publishers := initPublishers(logger, cfg, hub)

	return NewPhotosApp(logger, fetcher, policy, cfg.App.HTTPAddr, hub, publishers, tp)
}

func initPublishers(logger *zap.SugaredLogger, cfg *config.Config, hub *presentation.Hub) []publisher.StatePublisher {
	publishers := []publisher.StatePublisher{hub}

	if cfg.RedisEnabled() {
		rdb := initRedisClient(logger, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		publishers = append(publishers, publisher.NewRedisPublisher(rdb, logger, cfg.Redis.Channel))
	}

	if cfg.KafkaEnabled() {
		publishers = append(publishers, publisher.NewKafkaPublisher(logger, initStateQueue(logger, cfg)))
	}

	names := make([]string, 0, len(publishers))
	for _, p := range publishers {
		names = append(names, p.Name())
	}
	logger.Infow("State publishers configured", "publishers", names)

	return publishers
}

func initRedisClient(logger *zap.SugaredLogger, addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		log.Fatalf("redisotel tracing err: %v", err)
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		log.Fatalf("redisotel metrics err: %v", err)
	}

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatalw("Failed to connect to Redis for state events", "addr", addr, "err", err)
	}

	logger.Infow("Connected to Redis for state events", "addr", addr)
	return rdb
}

func initStateQueue(logger *zap.SugaredLogger, cfg *config.Config) queue.Queue {
	kafkaCfg := queue.KafkaConfig{
		Seeds:    cfg.Kafka.Seeds,
		Topic:    cfg.Kafka.Topic,
		User:     cfg.Kafka.Username,
		Password: cfg.Kafka.Password,
	}

	stateQueue, err := queue.NewKafkaQueue(logger, &kafkaCfg)
	if err != nil {
		logger.Fatalw("Error initializing state queue", "err", err)
	}

	logger.Infow("Kafka state queue ready", "seeds", cfg.Kafka.Seeds, "topic", cfg.Kafka.Topic)
	return stateQueue
}

func initTracing(logger *zap.SugaredLogger, cfg *config.Config) *trace.TracerProvider {
	if !cfg.TracingEnabled() {
		logger.Infow("OTLP endpoint not set, tracing disabled")
		return nil
	}

	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(cfg.Tracing.OTLPEndpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("Error initializing otlp exporter: %v", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		log.Fatal("Error initializing otel resource:", err)
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)

	return tracerProvider
}

func initConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	return cfg
}

func initLogger(cfg *config.Config) *zap.SugaredLogger {
	newLogger := zap.NewProduction
	if cfg.IsDev() {
		newLogger = zap.NewDevelopment
	}

	zapLogger, err := newLogger()
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
		return nil
	}

	logger := zapLogger.Sugar()
	return logger
}

func initEnv() {
	if os.Getenv("APP_ENV") == "prod" {
		return
	}

	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return
	}

	err := godotenv.Load(envFile)

	if err != nil {
		log.Fatalf("Error loading .env file")
	}
}
