package ports

import "context"

// DurationUnknown is returned by duration and remaining-time queries when
// no media is loaded or the surface has not learned its duration yet.
// The value follows the VPAID convention of -2 for "unknown".
const DurationUnknown = -2

// SurfaceHandlers carries the raw signal callbacks a surface invokes while
// media plays. All positions and durations are in seconds. Handlers may be
// invoked from the surface's own goroutine; the controller is responsible
// for its own synchronization.
type SurfaceHandlers struct {
	// OnProgress is invoked on every position update.
	OnProgress func(position, duration float64)

	// OnComplete is invoked exactly once when the media reaches its end.
	OnComplete func()

	// OnClick is invoked when the viewer clicks the creative.
	OnClick func(id string)

	// OnInteraction is invoked on other viewer interactions.
	OnInteraction func(id string)
}

// PlaybackSurface is a device capable of decoding and rendering a single
// media resource inside a host-provided slot.
//
// Surfaces are created muted: autoplay policies forbid unmuted autoplay,
// and the host unmutes through its own UI if desired.
type PlaybackSurface interface {
	// Play begins playback. It blocks until playback has actually started
	// (or failed), so callers that need asynchronous start run it in a
	// goroutine. Once playback begins, the surface delivers progress and
	// completion signals through its bound handlers.
	Play(ctx context.Context) error

	// Pause suspends playback. Safe to call in any state.
	Pause()

	// Resume continues playback after Pause. Safe to call in any state.
	Resume()

	// Position returns the current playback position in seconds.
	Position() float64

	// Duration returns the media duration in seconds, or DurationUnknown.
	Duration() float64

	// SetVolume sets the playback volume in [0, 1].
	SetVolume(v float64)

	// Volume returns the current playback volume.
	Volume() float64

	// Bind registers the signal handlers. Must be called before Attach.
	Bind(h SurfaceHandlers)

	// Attach inserts the surface into the given slot.
	Attach(slot Slot)

	// Detach removes the surface from the slot and releases its resources.
	// No signals are delivered after Detach returns.
	Detach(slot Slot)
}

// Slot is the host-environment-owned container the ad renders into.
type Slot interface {
	// Add records that a surface now occupies the slot.
	Add(s PlaybackSurface)

	// Remove records that the surface left the slot. Removing a surface
	// that is not present is a no-op.
	Remove(s PlaybackSurface)

	// Bounds returns the slot dimensions in pixels.
	Bounds() (width, height int)
}

// SurfaceFactory constructs a playback surface for a media resource sized
// to the given dimensions. Implementations must return a surface that is
// muted and configured for inline playback.
type SurfaceFactory func(mediaURL string, width, height int) PlaybackSurface
