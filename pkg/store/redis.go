// Package store persists trained classifier snapshots outside the process.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bayesmine/classifier/pkg/bayes"
)

// Options configures the Redis model store.
type Options struct {
	URL         string
	KeyPrefix   string
	DatabaseNum int
}

// DefaultOptions returns the default Redis store options.
func DefaultOptions() *Options {
	return &Options{
		URL:       "redis://localhost:6379",
		KeyPrefix: "bayesmine",
	}
}

// RedisStore keeps classifier snapshots in Redis, one JSON blob per model
// name plus a small metadata hash.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, opts *Options) (*RedisStore, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	opt, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	opt.DB = opts.DatabaseNum
	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis connection failed: %w", err)
	}
	return &RedisStore{client: client, prefix: opts.KeyPrefix}, nil
}

// Save stores a model snapshot under the given name.
func (s *RedisStore) Save(ctx context.Context, name string, snap *bayes.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.modelKey(name), data, 0)
	pipe.HSet(ctx, s.metaKey(name),
		"trained_at", snap.TrainedAt.Unix(),
		"examples", snap.Examples,
		"saved_at", time.Now().Unix(),
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store model %q: %w", name, err)
	}
	return nil
}

// Load retrieves a model snapshot by name.
func (s *RedisStore) Load(ctx context.Context, name string) (*bayes.Snapshot, error) {
	data, err := s.client.Get(ctx, s.modelKey(name)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("model %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model %q: %w", name, err)
	}

	var snap bayes.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode model %q: %w", name, err)
	}
	return &snap, nil
}

// List returns the names of all stored models.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	pattern := s.modelKey("*")
	keyPrefix := s.modelKey("")

	var names []string
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return names, nil
}

// Delete removes a stored model and its metadata.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.modelKey(name), s.metaKey(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete model %q: %w", name, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) modelKey(name string) string {
	return fmt.Sprintf("%s:model:%s", s.prefix, name)
}

func (s *RedisStore) metaKey(name string) string {
	return fmt.Sprintf("%s:meta:%s", s.prefix, name)
}
