package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/center-believer/backend/pkg/logger"
)

// retryDelay is the fixed wait between MongoDB connection attempts.
const retryDelay = 5 * time.Second

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// ConnectWithRetry keeps attempting to connect every 5 seconds until it
// succeeds or ctx is cancelled. The HTTP server must not start serving until
// this returns, so a slow database start delays the service rather than
// killing it.
func ConnectWithRetry(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	for attempt := 1; ; attempt++ {
		client, err := ConnectMongo(ctx, uri, timeout)
		if err == nil {
			if attempt > 1 {
				logger.Infof("connected to MongoDB after %d attempts", attempt)
			}
			return client, nil
		}
		logger.Warnf("attempt %d: failed to connect to MongoDB: %v (retrying in %s)", attempt, err, retryDelay)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}
