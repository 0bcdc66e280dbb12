// Package redis publishes jobs onto a Sidekiq-compatible Redis list.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// Config controls the queue connection.
type Config struct {
	// Addr is the broker address, host:port.
	Addr string
	// DB selects the Redis logical database.
	DB int
	// QueueName is the list jobs are pushed onto, e.g. development:queue:maman.
	QueueName string
}

// Publisher LPUSHes JSON payloads onto the configured queue list, which is
// how Sidekiq producers enqueue work.
type Publisher struct {
	client *redis.Client
	queue  string
}

// New creates a Publisher for the broker at cfg.Addr. The connection is
// established lazily on first publish.
func New(cfg Config) *Publisher {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})
	return &Publisher{client: client, queue: cfg.QueueName}
}

// Publish marshals payload to JSON and pushes it onto the queue list.
func (p *Publisher) Publish(ctx context.Context, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}
	if err := p.client.LPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", p.queue, err)
	}
	return nil
}

// Close releases the client connection pool.
func (p *Publisher) Close() error {
	return p.client.Close()
}
