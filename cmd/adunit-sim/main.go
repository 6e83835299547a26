package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/admesh-labs/adunit/internal/adapters/sim"
	"github.com/admesh-labs/adunit/internal/cliconfig"
	pkglog "github.com/admesh-labs/adunit/pkg/log"
	"github.com/admesh-labs/adunit/pkg/vpaid"
	"github.com/admesh-labs/adunit/plugins/creativewatcher"
)

const helpDescription = `
Run a simulated ad session against the embeddable ad unit.

The harness plays the host role: it performs the handshake, initializes the
unit with a creative parameter blob, starts playback, subscribes to every
event the unit can emit, and logs the full notification sequence. Playback
runs on the simulated surface, so no real media is fetched or decoded.

With --watch, the harness re-runs the session whenever the creative file
changes, which makes a quick edit/replay loop for creative parameters.
`

var exampleUsage = strings.TrimSpace(`
  adunit-sim --video-url https://cdn.example/spot.mp4 --duration 10s
  adunit-sim --creative-file ./creative.json --skip-at 5s
  adunit-sim --creative-file ./creative.json --watch
`)

// allEvents is the full outbound event surface, subscribed for logging.
var allEvents = []string{
	vpaid.EventAdLoaded,
	vpaid.EventAdStarted,
	vpaid.EventAdImpression,
	vpaid.EventAdPlaying,
	vpaid.EventAdPaused,
	vpaid.EventAdStopped,
	vpaid.EventAdSkipped,
	vpaid.EventAdSkippableStateChange,
	vpaid.EventAdVideoFirstQuartile,
	vpaid.EventAdVideoMidpoint,
	vpaid.EventAdVideoThirdQuartile,
	vpaid.EventAdVideoComplete,
	vpaid.EventAdClickThru,
	vpaid.EventAdInteraction,
	vpaid.EventAdVolumeChange,
	vpaid.EventAdError,
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "adunit-sim",
		Short:   "Run a simulated ad session against the embeddable ad unit",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags; file and env values never
			// override an explicitly set flag.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl := cliconfig.Logger(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !cfg.Watch {
				return runSession(ctx, cfg, zl)
			}

			if cfg.CreativeFile == "" {
				return fmt.Errorf("--watch requires --creative-file")
			}

			reload := make(chan string, 1)
			watcher := creativewatcher.New(creativewatcher.Config{Path: cfg.CreativeFile})
			err := watcher.Start(ctx, pkglog.NewZerologAdapterWithLogger(zl), func(path string) {
				select {
				case reload <- path:
				default:
				}
			})
			if err != nil {
				return err
			}
			defer watcher.Stop()

			for {
				if err := runSession(ctx, cfg, zl); err != nil && ctx.Err() == nil {
					zl.Error().Err(err).Msg("session failed, waiting for creative change")
				}
				select {
				case <-ctx.Done():
					return nil
				case <-reload:
					zl.Info().Msg("replaying session with updated creative")
				}
			}
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.adunit/sim.toml)")
	root.Flags().StringVar(&cfg.CreativeFile, "creative-file", cfg.CreativeFile, "path to a creative parameter JSON file")
	root.Flags().StringVar(&cfg.VideoURL, "video-url", cfg.VideoURL, "media URL for an inline creative")
	root.Flags().StringVar(&cfg.ClickThroughURL, "click-url", cfg.ClickThroughURL, "click-through URL for an inline creative")
	root.Flags().Float64Var(&cfg.SkippableAfter, "skippable-after", cfg.SkippableAfter, "seconds of playback before the ad becomes skippable (0 = never)")
	root.Flags().IntVar(&cfg.Width, "width", cfg.Width, "slot width in pixels")
	root.Flags().IntVar(&cfg.Height, "height", cfg.Height, "slot height in pixels")
	root.Flags().StringVar(&cfg.ViewMode, "view-mode", cfg.ViewMode, "view mode: normal, thumbnail, or fullscreen")
	root.Flags().IntVar(&cfg.Bitrate, "bitrate", cfg.Bitrate, "desired bitrate in kbps")
	root.Flags().Float64Var(&cfg.Volume, "volume", cfg.Volume, "volume set once playback starts, in [0, 1]")
	root.Flags().DurationVar(&cfg.MediaDuration, "duration", cfg.MediaDuration, "simulated media duration")
	root.Flags().DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "simulated progress tick interval")
	root.Flags().DurationVar(&cfg.StartupLatency, "startup-latency", cfg.StartupLatency, "simulated playback start latency")
	root.Flags().DurationVar(&cfg.SkipAt, "skip-at", cfg.SkipAt, "issue skipAd this long after playback starts (0 = never)")
	root.Flags().DurationVar(&cfg.ClickAt, "click-at", cfg.ClickAt, "inject a click this long after playback starts (0 = never)")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run the session when the creative file changes")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// runSession drives one full host-side session: handshake, init, start,
// playback to completion (or skip), stop. It returns once the unit emits
// AdStopped, the unit reports an error, or ctx is cancelled.
func runSession(ctx context.Context, cfg cliconfig.Config, zl zerolog.Logger) error {
	logger := pkglog.NewZerologAdapterWithLogger(zl)

	params, err := cfg.CreativeParameters()
	if err != nil {
		return err
	}

	slot := sim.NewSlot(cfg.Width, cfg.Height)

	var (
		surfaceMu sync.Mutex
		surface   *sim.Surface
	)
	factory := vpaid.SurfaceFactory(func(mediaURL string, width, height int) vpaid.PlaybackSurface {
		s := sim.NewSurface(sim.SurfaceConfig{
			MediaURL:       mediaURL,
			Width:          width,
			Height:         height,
			Duration:       cfg.MediaDuration,
			TickInterval:   cfg.TickInterval,
			StartupLatency: cfg.StartupLatency,
		})
		surfaceMu.Lock()
		surface = s
		surfaceMu.Unlock()
		return s
	})

	unit := vpaid.New(
		vpaid.WithLogger(logger),
		vpaid.WithSurfaceFactory(factory),
	)

	done := make(chan struct{})
	failed := make(chan string, 1)

	var (
		timerMu sync.Mutex
		timers  []*time.Timer
	)
	defer func() {
		timerMu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		timerMu.Unlock()
	}()
	after := func(d time.Duration, fn func()) {
		timerMu.Lock()
		timers = append(timers, time.AfterFunc(d, fn))
		timerMu.Unlock()
	}

	// Log every emission, then run the host reaction for the events that
	// drive the session forward.
	for _, name := range allEvents {
		event := name
		unit.Subscribe(event, func(_, data any) {
			ev := zl.Info().Str("event", event)
			if data != nil {
				ev = ev.Interface("data", data)
			}
			ev.Msg("ad event")

			switch event {
			case vpaid.EventAdLoaded:
				unit.StartAd()
			case vpaid.EventAdStarted:
				if cfg.Volume > 0 {
					unit.SetAdVolume(cfg.Volume)
				}
				if cfg.SkipAt > 0 {
					after(cfg.SkipAt, unit.SkipAd)
				}
				if cfg.ClickAt > 0 {
					after(cfg.ClickAt, func() {
						surfaceMu.Lock()
						s := surface
						surfaceMu.Unlock()
						if s != nil {
							s.Click("adunit-sim")
						}
					})
				}
			case vpaid.EventAdVideoComplete:
				unit.StopAd()
			case vpaid.EventAdStopped:
				close(done)
			case vpaid.EventAdError:
				msg := "unknown error"
				if d, ok := data.(vpaid.AdErrorData); ok {
					msg = d.Message
				}
				select {
				case failed <- msg:
				default:
				}
			}
		}, nil)
	}

	adVersion := unit.HandshakeVersion(vpaid.ProtocolVersion)
	zl.Info().Str("ad_version", adVersion).Msg("handshake complete")

	unit.InitAd(cfg.Width, cfg.Height, cfg.ViewMode, cfg.Bitrate,
		vpaid.CreativeData{AdParameters: params},
		vpaid.EnvironmentVars{Slot: slot},
	)

	select {
	case <-ctx.Done():
		unit.StopAd()
		return nil
	case msg := <-failed:
		unit.StopAd()
		return fmt.Errorf("ad error: %s", msg)
	case <-done:
		zl.Info().
			Float64("remaining", unit.GetAdRemainingTime()).
			Str("state", unit.Status().String()).
			Msg("session finished")
		return nil
	}
}
