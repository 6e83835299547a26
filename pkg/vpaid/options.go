package vpaid

import (
	"github.com/admesh-labs/adunit/internal/adapters/sim"
	"github.com/admesh-labs/adunit/internal/ports"
	"github.com/admesh-labs/adunit/pkg/events"
	"github.com/admesh-labs/adunit/pkg/log"
)

// Option configures optional behavior of a Unit.
type Option func(*options)

// options holds the optional configuration for a Unit.
type options struct {
	logger  log.Logger
	bus     *events.Bus
	factory ports.SurfaceFactory
}

// defaultOptions returns options with sensible defaults: a no-op logger,
// a fresh bus, and the simulated surface factory.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		factory: func(mediaURL string, width, height int) ports.PlaybackSurface {
			return sim.NewSurface(sim.SurfaceConfig{
				MediaURL: mediaURL,
				Width:    width,
				Height:   height,
			})
		},
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBus sets a custom event bus. Useful when the host wants to share one
// registry across collaborators. If not provided, the Unit creates its own.
func WithBus(bus *events.Bus) Option {
	return func(o *options) {
		o.bus = bus
	}
}

// WithSurfaceFactory sets the factory used to create the playback surface
// during InitAd. If not provided, the simulated surface is used.
func WithSurfaceFactory(factory SurfaceFactory) Option {
	return func(o *options) {
		if factory != nil {
			o.factory = factory
		}
	}
}
