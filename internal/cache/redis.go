package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Options for the optional Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Init connects to Redis. On failure the client stays nil and callers fall
// back to process memory.
func Init(opts Options) error {
	c := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		client = nil
		return err
	}
	client = c
	return nil
}

// GetClient returns the Redis client, nil when Redis is not in use
func GetClient() *redis.Client {
	return client
}

// Close releases the connection if one was opened
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
