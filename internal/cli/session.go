package cli

import (
	"fmt"

	sberrors "github.com/tessro/spotbar/internal/errors"
	"github.com/tessro/spotbar/internal/playback"
	"github.com/tessro/spotbar/internal/spotify/auth"
	"github.com/tessro/spotbar/internal/spotify/client"
	"github.com/tessro/spotbar/internal/spotify/player"
)

// apiBaseURL is the Web API root every session talks to.
var apiBaseURL = client.BaseURL

// session is the wiring shared by every command that talks to Spotify.
type session struct {
	storage    *auth.TokenStorage
	client     *client.Client
	player     *player.Player
	controller *playback.Controller
}

func newSession() (*session, error) {
	storage, err := auth.NewTokenStorage(cfg.Spotify.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}

	c := client.New(cfg.Spotify.ClientID, storage,
		client.WithBaseURL(apiBaseURL),
		client.WithMaxRetries(cfg.Spotify.MaxRetries),
		client.WithLogger(logger),
	)
	if err := c.LoadToken(); err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	p := player.New(c)
	if cfg.Spotify.Device != "" {
		p.SetDevice(cfg.Spotify.Device)
	}

	controller := playback.NewController(p, p, nil, playback.Options{
		InitialVolume:  cfg.Player.InitialVolume,
		VolumeStep:     cfg.Player.VolumeStep,
		VolumeDebounce: cfg.VolumeDebounce(),
		Logger:         logger,
	})

	return &session{
		storage:    storage,
		client:     c,
		player:     p,
		controller: controller,
	}, nil
}

// requireToken fails with a suggestion when no token is available. The bar
// itself runs without one and says so on screen.
func (s *session) requireToken() error {
	if !s.player.HasToken() {
		return sberrors.WithSuggestion(sberrors.ErrNotAuthenticated,
			fmt.Sprintf("Write a token to %s or set %s", s.storage.Path(), auth.AccessTokenEnv))
	}
	return nil
}

func (s *session) close() {
	s.controller.Close()
}
