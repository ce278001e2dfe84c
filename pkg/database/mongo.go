package database

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds MongoDB connection configuration.
type MongoConfig struct {
	URI      string
	Database string

	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
	MaxConnIdle    time.Duration
}

// DefaultMongoConfig returns sensible defaults for the MongoDB connection pool.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "eshopping",
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    100,
		MinPoolSize:    5,
		MaxConnIdle:    30 * time.Minute,
	}
}

const (
	defaultRetryAttempts = 3
	defaultRetryBaseWait = 1 * time.Second
	retryJitterFraction  = 0.25
)

// retryBackoff returns the backoff duration for the given attempt (0-indexed)
// with ±25% jitter. Base delays: 1s, 2s, 4s.
func retryBackoff(attempt int) time.Duration {
	base := defaultRetryBaseWait * time.Duration(1<<attempt)
	jitter := time.Duration(float64(base) * retryJitterFraction * (2*rand.Float64() - 1))
	return base + jitter
}

// NewMongoClient connects to MongoDB and verifies the connection with a ping.
// Connection attempts are retried with exponential backoff, since the database
// container may still be starting when the service boots.
func NewMongoClient(ctx context.Context, cfg MongoConfig, logger *slog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdle).
		SetPoolMonitor(poolMonitor())

	var lastErr error
	for attempt := 0; attempt < defaultRetryAttempts; attempt++ {
		if attempt > 0 {
			wait := retryBackoff(attempt - 1)
			logger.Warn("retrying mongodb connection",
				slog.Int("attempt", attempt+1),
				slog.Duration("wait", wait),
			)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		client, err := mongo.Connect(connectCtx, opts)
		if err == nil {
			err = client.Ping(connectCtx, readpref.Primary())
			if err == nil {
				cancel()
				logger.Info("connected to mongodb", slog.String("database", cfg.Database))
				return client, nil
			}
			_ = client.Disconnect(connectCtx)
		}
		cancel()
		lastErr = err
	}

	return nil, fmt.Errorf("connect to mongodb after %d attempts: %w", defaultRetryAttempts, lastErr)
}

// PingMongo verifies MongoDB connectivity. Used as a readiness check.
func PingMongo(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

// DisconnectMongo closes the MongoDB connection with a bounded timeout.
func DisconnectMongo(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}
