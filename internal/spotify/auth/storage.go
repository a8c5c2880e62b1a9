package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultTokenFileName is the default name for the token file.
	DefaultTokenFileName = "spotify_token.json"

	// AccessTokenEnv supplies a bare access token when no token file exists.
	AccessTokenEnv = "SPOTBAR_ACCESS_TOKEN"

	// envTokenLifetime is how long an access token taken from the
	// environment is trusted. Spotify access tokens live for an hour.
	envTokenLifetime = time.Hour
)

// TokenStorage reads and writes the token file written by whatever
// performed the OAuth login.
type TokenStorage struct {
	path string
	now  func() time.Time
}

// DefaultTokenPath returns ~/.config/spotbar/spotify_token.json, honouring
// the platform's user config directory.
func DefaultTokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "spotbar", DefaultTokenFileName), nil
}

// NewTokenStorage creates a token storage at path, or at DefaultTokenPath
// when path is empty.
func NewTokenStorage(path string) (*TokenStorage, error) {
	if path == "" {
		p, err := DefaultTokenPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &TokenStorage{path: path, now: time.Now}, nil
}

// Save persists a token to disk, readable by the owner only.
func (s *TokenStorage) Save(token *Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Load reads the token file. If it does not exist, a token from
// SPOTBAR_ACCESS_TOKEN is returned instead; with neither, Load returns nil
// and no error.
func (s *TokenStorage) Load() (*Token, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.envToken(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", s.path, err)
	}
	return &token, nil
}

func (s *TokenStorage) envToken() *Token {
	v := os.Getenv(AccessTokenEnv)
	if v == "" {
		return nil
	}
	return &Token{
		AccessToken: v,
		TokenType:   "Bearer",
		ExpiresAt:   s.now().Add(envTokenLifetime),
	}
}

// Exists returns true if a token file exists.
func (s *TokenStorage) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the path to the token file.
func (s *TokenStorage) Path() string {
	return s.path
}
