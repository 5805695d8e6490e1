// Package session resolves the chat session id sent with every message. The
// id is generated once, persisted through a Store and reused afterwards.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a Store that holds no id yet.
var ErrNotFound = errors.New("session id not found")

// Store persists a single session id.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, id string) error
}

// Resolve returns the stored id, creating and saving a new one when the store
// is empty or holds something that is not a UUID. Store failures never stop
// the game: they are logged and a fresh id is used for this run.
func Resolve(ctx context.Context, store Store, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	id, err := store.Load(ctx)
	switch {
	case err == nil:
		if _, perr := uuid.Parse(id); perr == nil {
			logger.Debug("Reusing session", "session_id", id)
			return id
		}
		logger.Warn("Stored session id is not a UUID, replacing it", "value", id)
	case errors.Is(err, ErrNotFound):
		logger.Debug("No stored session, creating one")
	default:
		logger.Warn("Failed to load session id", "error", err)
	}

	id = uuid.NewString()
	if err := store.Save(ctx, id); err != nil {
		logger.Warn("Failed to persist session id; it will last for this run only",
			"session_id", id, "error", err)
	} else {
		logger.Info("Created session", "session_id", id)
	}
	return id
}

// Options selects and configures a Store.
type Options struct {
	Kind     string // memory, file or redis
	File     string
	RedisURL string
	RedisKey string
}

// Open builds the store named by opts.Kind. The returned close function is
// never nil.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, func() error, error) {
	noop := func() error { return nil }
	switch opts.Kind {
	case "", "memory":
		return NewMemoryStore(), noop, nil
	case "file":
		return NewFileStore(opts.File), noop, nil
	case "redis":
		rs, err := NewRedisStore(ctx, opts.RedisURL, opts.RedisKey, logger)
		if err != nil {
			return nil, noop, err
		}
		return rs, rs.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown session store %q", opts.Kind)
	}
}
