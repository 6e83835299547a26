// Package adunit provides an embeddable, host-driven video ad unit.
//
// Example usage:
//
//	unit := adunit.New(adunit.WithLogger(logger))
//	unit.Subscribe(vpaid.EventAdLoaded, func(_, _ any) {
//	    unit.StartAd()
//	}, nil)
//	unit.InitAd(640, 360, vpaid.ViewModeNormal, 500,
//	    adunit.CreativeData{AdParameters: blob},
//	    adunit.EnvironmentVars{Slot: slot})
//
// The full protocol surface lives in [github.com/admesh-labs/adunit/pkg/vpaid];
// this package re-exports the common entry points for convenient embedding.
package adunit

import (
	"github.com/admesh-labs/adunit/pkg/events"
	"github.com/admesh-labs/adunit/pkg/log"
	"github.com/admesh-labs/adunit/pkg/vpaid"
)

// Unit wraps a single video playback session and reports standardized
// lifecycle and progress events to the host.
type Unit = vpaid.Unit

// Option configures optional behavior of a Unit.
type Option = vpaid.Option

// CreativeData carries the host-supplied creative parameter blob.
type CreativeData = vpaid.CreativeData

// EnvironmentVars carries host environment references for the session.
type EnvironmentVars = vpaid.EnvironmentVars

// Slot is the host-owned container the ad renders into.
type Slot = vpaid.Slot

// PlaybackSurface is the rendering device port.
type PlaybackSurface = vpaid.PlaybackSurface

// SurfaceFactory constructs a playback surface for a media resource.
type SurfaceFactory = vpaid.SurfaceFactory

// Handler is a host callback bound to an event name.
type Handler = events.Handler

// ProtocolVersion is the highest protocol version the unit supports.
const ProtocolVersion = vpaid.ProtocolVersion

// New creates a Unit in the Uninitialized state.
func New(opts ...Option) *Unit {
	return vpaid.New(opts...)
}

// WithLogger sets a custom logger for structured logging.
func WithLogger(logger log.Logger) Option {
	return vpaid.WithLogger(logger)
}

// WithSurfaceFactory sets the factory used to create the playback surface.
func WithSurfaceFactory(factory SurfaceFactory) Option {
	return vpaid.WithSurfaceFactory(factory)
}
