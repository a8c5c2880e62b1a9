package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			InitialVolume:  50,
			VolumeStep:     10,
			VolumeDebounce: 500,
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.InitialVolume == 0 {
		c.Player.InitialVolume = d.Player.InitialVolume
	}
	if c.Player.VolumeStep == 0 {
		c.Player.VolumeStep = d.Player.VolumeStep
	}
	if c.Player.VolumeDebounce == 0 {
		c.Player.VolumeDebounce = d.Player.VolumeDebounce
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
