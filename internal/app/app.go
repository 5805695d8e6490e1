// Package app wires configuration, logging, the session store and the chat
// client into a village. Both front ends start through it.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jwebster45206/wizard-village/internal/chatclient"
	"github.com/jwebster45206/wizard-village/internal/config"
	"github.com/jwebster45206/wizard-village/internal/events"
	"github.com/jwebster45206/wizard-village/internal/logger"
	"github.com/jwebster45206/wizard-village/internal/session"
	"github.com/jwebster45206/wizard-village/internal/village"
	"github.com/jwebster45206/wizard-village/pkg/dialog"
	"github.com/jwebster45206/wizard-village/pkg/scene"
	"github.com/jwebster45206/wizard-village/pkg/textfilter"
	"github.com/jwebster45206/wizard-village/pkg/textinput"
)

const sessionTimeout = 5 * time.Second

// App is a running village with the resources it holds open.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Village *village.Village

	broadcaster *events.Broadcaster
	closeStore  func() error
	logCloser   io.Closer
}

// Deps overrides collaborators, mostly for tests. Zero values pick the
// configured defaults.
type Deps struct {
	Client    dialog.ChatClient
	Clipboard textinput.Clipboard
	LogOutput io.Writer
}

// Start loads configuration from the environment and builds the village.
func Start(m scene.Measurer, deps Deps) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{Config: cfg, logCloser: io.NopCloser(nil), closeStore: func() error { return nil }}
	if deps.LogOutput != nil {
		a.Logger = logger.New(cfg, deps.LogOutput)
	} else if a.Logger, a.logCloser, err = logger.Setup(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionTimeout)
	defer cancel()
	store, closeStore, err := session.Open(ctx, session.Options{
		Kind:     cfg.SessionStore,
		File:     cfg.SessionFile,
		RedisURL: cfg.RedisURL,
		RedisKey: cfg.SessionKey,
	}, a.Logger)
	if err != nil {
		logger.WithError(a.Logger, err).Warn("Session store unavailable, using an in-memory session", "store", cfg.SessionStore)
		store = session.NewMemoryStore()
	} else {
		a.closeStore = closeStore
	}
	sessionID := session.Resolve(ctx, store, a.Logger)
	log := logger.WithSessionID(a.Logger, sessionID)

	client := deps.Client
	if client == nil {
		client = chatclient.NewHTTPClient(cfg.ChatEndpoint, cfg.ChatTimeout, log)
	}
	clip := deps.Clipboard
	if clip == nil {
		clip = textinput.SystemClipboard{}
	}
	var filter dialog.TextFilter
	if textfilter.ShouldFilterContent(cfg.ContentRating) {
		filter = textfilter.NewProfanityFilter()
	}
	var listener dialog.EventListener
	if rs, ok := store.(*session.RedisStore); ok {
		a.broadcaster = events.NewBroadcaster(rs.Client(), sessionID, log)
		listener = a.broadcaster
	}

	a.Village, err = village.New(village.Options{
		Measurer:    m,
		Client:      client,
		SessionID:   sessionID,
		ChatTimeout: cfg.ChatTimeout,
		Proximity:   cfg.Proximity(),
		ScrollStep:  cfg.ScrollStep,
		Clipboard:   clip,
		Filter:      filter,
		Events:      listener,
		Logger:      log,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build village: %w", err)
	}

	log.Info("Village ready",
		"environment", cfg.Environment,
		"chat_endpoint", cfg.ChatEndpoint,
		"session_store", cfg.SessionStore,
		"content_rating", cfg.ContentRating)
	return a, nil
}

// Close stops the village and releases the session store and log file.
func (a *App) Close() {
	if a.Village != nil {
		a.Village.Shutdown()
	}
	if a.broadcaster != nil {
		a.broadcaster.Wait()
	}
	if err := a.closeStore(); err != nil {
		logger.WithError(a.Logger, err).Error("Error closing session store")
	}
	a.Logger.Info("Village closed")
	_ = a.logCloser.Close()
}
