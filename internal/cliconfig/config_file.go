package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	CreativeFile    string  `toml:"creative_file"`
	VideoURL        string  `toml:"video_url"`
	ClickThroughURL string  `toml:"click_through_url"`
	SkippableAfter  float64 `toml:"skippable_after"`
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	ViewMode        string  `toml:"view_mode"`
	Bitrate         int     `toml:"bitrate"`
	Volume          float64 `toml:"volume"`
	MediaDuration   string  `toml:"duration"`
	TickInterval    string  `toml:"tick_interval"`
	StartupLatency  string  `toml:"startup_latency"`
	SkipAt          string  `toml:"skip_at"`
	ClickAt         string  `toml:"click_at"`
	Watch           *bool   `toml:"watch"`
	LogLevel        string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.adunit/sim.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".adunit", "sim.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("creative-file", fc.CreativeFile, &cfg.CreativeFile)
	s.setString("video-url", fc.VideoURL, &cfg.VideoURL)
	s.setString("click-url", fc.ClickThroughURL, &cfg.ClickThroughURL)
	s.setString("view-mode", fc.ViewMode, &cfg.ViewMode)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setFloat("skippable-after", fc.SkippableAfter, &cfg.SkippableAfter)
	s.setFloat("volume", fc.Volume, &cfg.Volume)
	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)
	s.setInt("bitrate", fc.Bitrate, &cfg.Bitrate)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	if err := s.setDuration("duration", fc.MediaDuration, &cfg.MediaDuration); err != nil {
		return err
	}
	if err := s.setDuration("tick-interval", fc.TickInterval, &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("startup-latency", fc.StartupLatency, &cfg.StartupLatency); err != nil {
		return err
	}
	if err := s.setDuration("skip-at", fc.SkipAt, &cfg.SkipAt); err != nil {
		return err
	}
	if err := s.setDuration("click-at", fc.ClickAt, &cfg.ClickAt); err != nil {
		return err
	}

	return nil
}
