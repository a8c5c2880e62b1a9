package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoActiveDevice   = errors.New("no active device")
	ErrTrackNotFound    = errors.New("track not found")
	ErrPremiumRequired  = errors.New("spotify premium required")
	ErrRateLimited      = errors.New("rate limited")
	ErrNetworkError     = errors.New("network error")
	ErrTimeout          = errors.New("request timeout")
	ErrNotTerminal      = errors.New("not a terminal")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// SpotbarError wraps an error with a user-friendly suggestion.
type SpotbarError struct {
	Err        error
	Suggestion string
}

func (e *SpotbarError) Error() string {
	return e.Err.Error()
}

func (e *SpotbarError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &SpotbarError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var sbErr *SpotbarError
	if errors.As(err, &sbErr) && sbErr.Suggestion != "" {
		return sbErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrNotAuthenticated) || strings.Contains(errStr, "not authenticated") ||
		strings.Contains(errStr, "invalid access token") || strings.Contains(errStr, "token expired"):
		return "Store a Spotify token in the token file or set SPOTBAR_ACCESS_TOKEN (see 'spotbar token')"

	case errors.Is(err, ErrNoActiveDevice) || strings.Contains(errStr, "no active device"):
		return "Open Spotify on a device and start playing"

	case errors.Is(err, ErrPremiumRequired) || strings.Contains(errStr, "premium required") ||
		strings.Contains(errStr, "restricted device"):
		return "Controlling playback requires Spotify Premium"

	case errors.Is(err, ErrRateLimited) || strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429"):
		return "Too many requests. Wait a moment and try again"

	case errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused"):
		return "Check your internet connection and try again"

	case errors.Is(err, ErrNotTerminal):
		return "Run 'spotbar ui' from an interactive terminal, or use 'spotbar status'"

	case errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config"):
		return "Run 'spotbar config show' to inspect your configuration"

	case strings.Contains(errStr, "500") || strings.Contains(errStr, "server error"):
		return "Spotify is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	if suggestion := GetSuggestion(err); suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
