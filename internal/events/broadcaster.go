package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// Event is the message published for each conversation event.
type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
}

// Channel is the Pub/Sub channel carrying a session's events.
func Channel(sessionID string) string {
	return fmt.Sprintf("village-events:%s", sessionID)
}

// Broadcaster publishes conversation events to Redis Pub/Sub so other tools
// can follow a session while it is played.
type Broadcaster struct {
	redisClient *redis.Client
	sessionID   string
	logger      *slog.Logger
	now         func() time.Time
	wg          sync.WaitGroup
}

// NewBroadcaster creates a broadcaster for one session.
func NewBroadcaster(redisClient *redis.Client, sessionID string, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		redisClient: redisClient,
		sessionID:   sessionID,
		logger:      logger,
		now:         time.Now,
	}
}

// OnEvent publishes in the background so the game loop never waits on Redis.
func (b *Broadcaster) OnEvent(name string) {
	event := Event{Type: name, SessionID: b.sessionID, At: b.now().UTC()}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		_ = b.Publish(ctx, event)
	}()
}

// Publish sends one event and waits for Redis to accept it.
func (b *Broadcaster) Publish(ctx context.Context, event Event) error {
	channel := Channel(b.sessionID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Warn("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published", "channel", channel, "event_type", event.Type)
	return nil
}

// Wait blocks until background publishes have finished.
func (b *Broadcaster) Wait() {
	b.wg.Wait()
}
