package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmedwebmail/online-shop/internal/config"
	"github.com/ahmedwebmail/online-shop/internal/domain"
	"github.com/ahmedwebmail/online-shop/internal/event"
	handler "github.com/ahmedwebmail/online-shop/internal/handler/http"
	"github.com/ahmedwebmail/online-shop/internal/repository"
	"github.com/ahmedwebmail/online-shop/internal/repository/cached"
	"github.com/ahmedwebmail/online-shop/internal/repository/mongodb"
	"github.com/ahmedwebmail/online-shop/internal/service"
	"github.com/ahmedwebmail/online-shop/pkg/database"
	"github.com/ahmedwebmail/online-shop/pkg/health"
	pkgkafka "github.com/ahmedwebmail/online-shop/pkg/kafka"
	"github.com/ahmedwebmail/online-shop/pkg/tracing"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tracing (no-op unless enabled).
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "catalog-service",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// MongoDB connection.
	mongoCfg := database.DefaultMongoConfig()
	mongoCfg.URI = cfg.MongoURI
	mongoCfg.Database = cfg.MongoDatabase
	mongoCfg.MaxPoolSize = cfg.MongoMaxPool
	mongoCfg.MinPoolSize = cfg.MongoMinPool

	mongoClient, err := database.NewMongoClient(ctx, mongoCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	// Collections with unique name indexes.
	brandColl := mongodb.NewCollection[domain.Brand, *domain.Brand](db, "brands", domain.KindBrand)
	categoryColl := mongodb.NewCollection[domain.Category, *domain.Category](db, "categories", domain.KindCategory)
	if err := brandColl.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := categoryColl.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Optional Redis cache in front of the Mongo repositories.
	var brandRepo repository.ResourceRepository[domain.Brand, *domain.Brand] = brandColl
	var categoryRepo repository.ResourceRepository[domain.Category, *domain.Category] = categoryColl

	var redisClient *redis.Client
	if cfg.CacheEnabled {
		redisCfg := database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
		redisClient, err = database.NewRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}

		ttl := time.Duration(cfg.CacheTTLSecs) * time.Second
		brandRepo = cached.New[domain.Brand, *domain.Brand](brandColl, redisClient, domain.KindBrand, ttl, logger)
		categoryRepo = cached.New[domain.Category, *domain.Category](categoryColl, redisClient, domain.KindCategory, ttl, logger)
		logger.Info("redis cache enabled", slog.String("addr", redisCfg.Addr()))
	}

	// Build the dependency graph.
	eventProducer := event.NewProducer(producer, logger)
	brandService := service.NewBrandService(brandRepo, eventProducer, logger)
	categoryService := service.NewCategoryService(categoryRepo, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("mongodb", func(ctx context.Context) error {
		return database.PingMongo(ctx, mongoClient)
	})
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		Environment:       cfg.Environment,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		CacheMaxAge:       cfg.CacheControlMaxAge,
		TracingEnabled:    cfg.OTELEnabled,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	}, brandService, categoryService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		mongoClient:     mongoClient,
		redisClient:     redisClient,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := database.DisconnectMongo(a.mongoClient); err != nil {
		a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
