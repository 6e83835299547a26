package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (ADUNIT_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("creative-file", os.Getenv("ADUNIT_CREATIVE_FILE"), &cfg.CreativeFile)
	s.setString("video-url", os.Getenv("ADUNIT_VIDEO_URL"), &cfg.VideoURL)
	s.setString("click-url", os.Getenv("ADUNIT_CLICK_URL"), &cfg.ClickThroughURL)
	s.setString("view-mode", os.Getenv("ADUNIT_VIEW_MODE"), &cfg.ViewMode)
	s.setString("log-level", os.Getenv("ADUNIT_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setFloatFromString("skippable-after", os.Getenv("ADUNIT_SKIPPABLE_AFTER"), &cfg.SkippableAfter); err != nil {
		return err
	}
	if err := s.setFloatFromString("volume", os.Getenv("ADUNIT_VOLUME"), &cfg.Volume); err != nil {
		return err
	}
	if err := s.setIntFromString("width", os.Getenv("ADUNIT_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", os.Getenv("ADUNIT_HEIGHT"), &cfg.Height); err != nil {
		return err
	}
	if err := s.setIntFromString("bitrate", os.Getenv("ADUNIT_BITRATE"), &cfg.Bitrate); err != nil {
		return err
	}

	if err := s.setDuration("duration", os.Getenv("ADUNIT_DURATION"), &cfg.MediaDuration); err != nil {
		return err
	}
	if err := s.setDuration("tick-interval", os.Getenv("ADUNIT_TICK_INTERVAL"), &cfg.TickInterval); err != nil {
		return err
	}
	if err := s.setDuration("startup-latency", os.Getenv("ADUNIT_STARTUP_LATENCY"), &cfg.StartupLatency); err != nil {
		return err
	}
	if err := s.setDuration("skip-at", os.Getenv("ADUNIT_SKIP_AT"), &cfg.SkipAt); err != nil {
		return err
	}
	if err := s.setDuration("click-at", os.Getenv("ADUNIT_CLICK_AT"), &cfg.ClickAt); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("ADUNIT_WATCH"), &cfg.Watch)

	return nil
}
