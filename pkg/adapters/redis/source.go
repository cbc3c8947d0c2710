package redis

import (
	"context"
	"fmt"

	"github.com/aretw0/envchecker/pkg/env"
	backend "github.com/redis/go-redis/v9"
)

// Source reads environment snapshots stored as Redis hashes.
// Each named environment (e.g. "production") lives under prefix+name.
type Source struct {
	client *backend.Client
	prefix string
}

type Option func(*Source)

// WithPrefix sets the key prefix for environment hashes.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// New creates a new Redis source with options.
func New(address, password string, db int, opts ...Option) *Source {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis source from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Source {
	src := &Source{
		client: client,
		prefix: "envchecker:env:",
	}

	for _, opt := range opts {
		opt(src)
	}

	return src
}

func (s *Source) key(name string) string {
	return s.prefix + name
}

// Snapshot reads the whole hash for name in a single HGETALL.
// A missing key yields an empty snapshot.
func (s *Source) Snapshot(ctx context.Context, name string) (env.Map, error) {
	values, err := s.client.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read env from redis: %w", err)
	}
	return env.Map(values), nil
}

// Close releases the underlying client.
func (s *Source) Close() error {
	return s.client.Close()
}
