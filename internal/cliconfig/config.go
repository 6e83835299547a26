package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// View modes accepted by the harness.
var viewModes = map[string]bool{
	"normal":     true,
	"thumbnail":  true,
	"fullscreen": true,
}

// Config holds CLI configuration for the ad session harness.
type Config struct {
	// Creative source: either a file containing the JSON parameter blob,
	// or inline fields the harness assembles into one.
	CreativeFile    string
	VideoURL        string
	ClickThroughURL string
	SkippableAfter  float64

	// Init call arguments.
	Width    int
	Height   int
	ViewMode string
	Bitrate  int
	Volume   float64

	// Simulated playback shape.
	MediaDuration  time.Duration
	TickInterval   time.Duration
	StartupLatency time.Duration

	// Host script: positions at which the harness issues SkipAd or
	// injects a click. Zero disables.
	SkipAt  time.Duration
	ClickAt time.Duration

	Watch    bool
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Width:          640,
		Height:         360,
		ViewMode:       "normal",
		Bitrate:        500,
		Volume:         0,
		MediaDuration:  10 * time.Second,
		TickInterval:   250 * time.Millisecond,
		StartupLatency: 50 * time.Millisecond,
		LogLevel:       "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.CreativeFile == "" && c.VideoURL == "" {
		return fmt.Errorf("either creative-file or video-url is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if !viewModes[c.ViewMode] {
		return fmt.Errorf("view-mode must be normal, thumbnail, or fullscreen")
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be in [0, 1]")
	}
	if c.MediaDuration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	if c.SkipAt < 0 || c.ClickAt < 0 {
		return fmt.Errorf("skip-at and click-at must not be negative")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration value if not empty and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses and sets an int value if not empty and flag not changed.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer for %s: %w", flag, err)
	}
	*dst = n
	return nil
}

// setFloatFromString parses and sets a float value if not empty and flag not changed.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setFloat sets a float value if non-zero and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if non-zero and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBoolFromString parses and sets a bool value if not empty and flag not changed.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}

// setBool sets a bool value from an optional pointer if flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
