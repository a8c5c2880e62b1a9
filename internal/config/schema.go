package config

// Config is the root configuration structure.
type Config struct {
	Spotify SpotifyConfig `toml:"spotify" json:"spotify"`
	Player  PlayerConfig  `toml:"player" json:"player"`
	TUI     TUIConfig     `toml:"tui" json:"tui"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// SpotifyConfig holds Spotify API settings.
type SpotifyConfig struct {
	ClientID   string `toml:"client_id" json:"client_id"`
	TokenFile  string `toml:"token_file" json:"token_file"`
	MaxRetries int    `toml:"max_retries" json:"max_retries"`
	Device     string `toml:"device" json:"device"`
}

// PlayerConfig holds control bar behaviour.
type PlayerConfig struct {
	// InitialVolume is set at startup and on every sync. 0 selects the
	// default of 50; a silent start is not configurable.
	InitialVolume  int `toml:"initial_volume" json:"initial_volume"`
	VolumeStep     int `toml:"volume_step" json:"volume_step"`
	VolumeDebounce int `toml:"volume_debounce" json:"volume_debounce"` // milliseconds
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `toml:"theme" json:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
