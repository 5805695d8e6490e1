package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the id when none is configured.
const DefaultRedisKey = "wizard-village:session"

// RedisStore keeps the id under a single Redis key, so several clients
// pointed at the same server share one conversation.
type RedisStore struct {
	rdb    *redis.Client
	key    string
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redisURL and checks the connection.
func NewRedisStore(ctx context.Context, redisURL, key string, logger *slog.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if key == "" {
		key = DefaultRedisKey
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for session storage", "addr", opt.Addr, "key", key)

	return &RedisStore{rdb: rdb, key: key, logger: logger}, nil
}

func (r *RedisStore) Load(ctx context.Context) (string, error) {
	id, err := r.rdb.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session from redis: %w", err)
	}
	return id, nil
}

func (r *RedisStore) Save(ctx context.Context, id string) error {
	if err := r.rdb.Set(ctx, r.key, id, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	if err := r.rdb.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// Client exposes the connection for other features sharing the server.
func (r *RedisStore) Client() *redis.Client {
	return r.rdb
}
