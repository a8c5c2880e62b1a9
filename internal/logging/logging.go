// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tessro/spotbar/internal/config"
)

// Setup installs the global logger described by cfg. verbose forces debug
// level. When cfg.File is set, logs go to that file so they stay out of the
// bar's screen; otherwise they go to stderr. The returned func closes the
// file, if any.
func Setup(cfg config.LogConfig, verbose bool) (zerolog.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	out, closer, err := output(cfg.File)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return install(out, level), closer, nil
}

// SetupScreen is Setup for commands that draw on the whole terminal, where
// stderr output would corrupt the screen. Without a configured file it logs
// to DefaultFile, or nowhere if there is no cache directory.
func SetupScreen(cfg config.LogConfig, verbose bool) (zerolog.Logger, func() error, error) {
	if cfg.File != "" {
		return Setup(cfg, verbose)
	}

	path, err := DefaultFile()
	if err != nil {
		level, err := ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		if verbose {
			level = zerolog.DebugLevel
		}
		return install(io.Discard, level), func() error { return nil }, nil
	}
	cfg.File = path
	return Setup(cfg, verbose)
}

// DefaultFile is the log file used by SetupScreen: spotbar/spotbar.log in
// the user cache directory.
func DefaultFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "spotbar", "spotbar.log"), nil
}

func install(w io.Writer, level zerolog.Level) zerolog.Logger {
	logger := New(w, level)
	log.Logger = logger
	zerolog.SetGlobalLevel(level)
	return logger
}

// New builds a timestamped logger writing to w at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a config level name to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch s {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

func output(path string) (io.Writer, func() error, error) {
	if path == "" {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return w, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}
