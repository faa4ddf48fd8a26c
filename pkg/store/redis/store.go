// Package redis provides a Redis-backed Store for session state shared
// across processes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bromq-dev/mqttkit/pkg/store"
)

// Store implements store.Store using Redis.
type Store struct {
	client    redis.UniversalClient
	keyPrefix string

	log *slog.Logger
}

// Config configures the Redis store.
type Config struct {
	// Addr is the Redis server address (default: "localhost:6379").
	Addr string

	// Addrs is a list of addresses for cluster mode.
	Addrs []string

	// Password for authentication.
	Password string

	// DB is the database number (ignored in cluster mode).
	DB int

	// KeyPrefix is prepended to all keys (default: "mqtt:session:").
	KeyPrefix string

	// Client allows providing a pre-configured Redis client.
	Client redis.UniversalClient

	// Logger for logging. If nil, uses slog.Default().
	Logger *slog.Logger
}

// NewStore creates a new Redis-backed store.
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Addr == "" && len(cfg.Addrs) == 0 {
		cfg.Addr = "localhost:6379"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "mqtt:session:"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var client redis.UniversalClient
	if cfg.Client != nil {
		client = cfg.Client
	} else if len(cfg.Addrs) > 0 {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	return &Store{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		log:       cfg.Logger,
	}, nil
}

func (s *Store) Start(ctx context.Context) error {
	// Test connection
	testCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Ping(testCtx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}

	s.log.Info("redis store started", "prefix", s.keyPrefix)
	return nil
}

func (s *Store) Stop() error {
	return s.client.Close()
}

func (s *Store) key(clientID string) string {
	return s.keyPrefix + clientID
}

// ttlFor maps the record's session expiry to a key TTL. Zero and the
// protocol's "never expires" value both store without expiry.
func ttlFor(rec *store.Record) time.Duration {
	if rec.SessionExpiry == 0 || rec.SessionExpiry == 0xFFFFFFFF {
		return 0
	}
	return time.Duration(rec.SessionExpiry) * time.Second
}

func (s *Store) Put(ctx context.Context, rec *store.Record) error {
	if rec == nil || rec.ClientID == "" {
		return store.ErrInvalidClientID
	}

	data, err := store.EncodeRecord(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(rec.ClientID), data, ttlFor(rec)).Err()
}

func (s *Store) Get(ctx context.Context, clientID string) (*store.Record, error) {
	data, err := s.client.Get(ctx, s.key(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return store.DecodeRecord(data)
}

func (s *Store) Delete(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, s.key(clientID)).Err()
}

func (s *Store) Clients(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, s.keyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, s.keyPrefix))
	}
	return ids, nil
}

// Client returns the underlying Redis client.
func (s *Store) Client() redis.UniversalClient {
	return s.client
}

// Verify interface implementation
var _ store.Store = (*Store)(nil)
