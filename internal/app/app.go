// Package app serves generated topologies to remote swap harnesses over HTTP and websocket.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/convertible-couch/internal/config"
	"github.com/frudas24/convertible-couch/internal/fuzzing"
	"github.com/frudas24/convertible-couch/internal/logging"
)

const (
	maxStreamCount = 1000
	writeTimeout   = 5 * time.Second
)

// App builds computers from the configured profile on request.
type App struct {
	cfg      config.Config
	profile  config.Profile
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// New creates an application serving profile; a nil logger uses the process default.
func New(cfg config.Config, profile config.Profile, logger *slog.Logger) (*App, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &App{
		cfg:     cfg,
		profile: profile,
		logger:  logging.Ensure(logger).With("component", "app"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// Build generates the computer for seed from profile.
func (a *App) Build(seed uint64, profile config.Profile) (fuzzing.FuzzedComputer, error) {
	if err := profile.Validate(); err != nil {
		return fuzzing.FuzzedComputer{}, fmt.Errorf("%w: %v", fuzzing.ErrInvalidConfig, err)
	}
	c, err := profile.Build(seed)
	if err != nil {
		return fuzzing.FuzzedComputer{}, err
	}
	a.logger.Debug("built computer", "seed", seed, "id", c.ID, "monitors", len(c.Monitors), "outputs", len(c.VideoOutputs))
	return c, nil
}

// statusFor maps build errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, fuzzing.ErrInvalidConfig) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
