package vpaid

import (
	"context"
	"sync"

	"github.com/admesh-labs/adunit/internal/domain"
	"github.com/admesh-labs/adunit/internal/ports"
	"github.com/admesh-labs/adunit/pkg/events"
	"github.com/admesh-labs/adunit/pkg/log"
)

// View modes the host can request during init and resize.
const (
	ViewModeNormal     = "normal"
	ViewModeThumbnail  = "thumbnail"
	ViewModeFullscreen = "fullscreen"
)

// State represents the lifecycle state of the ad session as seen by the host.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StatePlaying
	StatePaused
	StateStopped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return convertState(s).String()
}

func convertState(s State) domain.AdState {
	switch s {
	case StateLoaded:
		return domain.StateLoaded
	case StatePlaying:
		return domain.StatePlaying
	case StatePaused:
		return domain.StatePaused
	case StateStopped:
		return domain.StateStopped
	default:
		return domain.StateUninitialized
	}
}

func fromDomainState(s domain.AdState) State {
	switch s {
	case domain.StateLoaded:
		return StateLoaded
	case domain.StatePlaying:
		return StatePlaying
	case domain.StatePaused:
		return StatePaused
	case domain.StateStopped:
		return StateStopped
	default:
		return StateUninitialized
	}
}

// Re-export the port interfaces so hosts can implement them without
// reaching into internal packages.
type (
	// PlaybackSurface is the rendering device port. See the interface docs.
	PlaybackSurface = ports.PlaybackSurface

	// SurfaceHandlers carries the raw signal callbacks.
	SurfaceHandlers = ports.SurfaceHandlers

	// Slot is the host-owned container the ad renders into.
	Slot = ports.Slot

	// SurfaceFactory constructs a playback surface for a media resource.
	SurfaceFactory = ports.SurfaceFactory
)

// CreativeData carries the host-supplied creative parameter blob.
type CreativeData struct {
	// AdParameters is a JSON document:
	//
	//	{"videoUrl": "...", "clickThroughUrl": "...", "skippableAfter": 5}
	//
	// videoUrl is required; the other fields are optional.
	AdParameters string
}

// EnvironmentVars carries host environment references for the session.
type EnvironmentVars struct {
	// Slot is the container the ad renders into.
	Slot Slot
}

// Unit wraps a single video playback session and reports standardized
// lifecycle and progress events to the host. Create one with [New]; a Unit
// serves exactly one session and is not reusable after StopAd.
type Unit struct {
	mu      sync.Mutex
	logger  log.Logger
	bus     *events.Bus
	factory SurfaceFactory

	state   domain.AdState
	params  domain.SessionParams
	surface ports.PlaybackSurface
	slot    ports.Slot

	width    int
	height   int
	viewMode string
	bitrate  int
	volume   float64

	starting  bool
	skippable bool
	quartiles [len(quartileEvents)]bool
	completed bool
}

// New creates a Unit in the Uninitialized state.
func New(opts ...Option) *Unit {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bus := o.bus
	if bus == nil {
		bus = events.New(o.logger)
	}

	return &Unit{
		logger:  o.logger,
		bus:     bus,
		factory: o.factory,
		state:   domain.StateUninitialized,
	}
}

// HandshakeVersion negotiates the protocol version with the host. It is a
// pure step with no state change, callable before any other method, and
// always returns the highest version the unit supports. Checking
// compatibility with playerVersion is the host's responsibility.
func (u *Unit) HandshakeVersion(playerVersion string) string {
	u.logger.Info("handshake",
		log.String("player_version", playerVersion),
		log.String("ad_version", ProtocolVersion),
	)
	return ProtocolVersion
}

// InitAd decodes the creative parameters, creates the playback surface
// inside the host slot, and transitions to Loaded. On success it emits
// AdLoaded; on failure it emits AdError and leaves the unit Uninitialized
// with no surface created. It never panics past its own boundary.
func (u *Unit) InitAd(width, height int, viewMode string, desiredBitrate int, creative CreativeData, env EnvironmentVars) {
	u.mu.Lock()

	if u.state != domain.StateUninitialized {
		state := u.state
		u.mu.Unlock()
		u.logger.Warn("initAd ignored", log.String("state", state.String()))
		return
	}

	u.slot = env.Slot
	u.width = width
	u.height = height
	u.viewMode = viewMode
	u.bitrate = desiredBitrate

	params, err := domain.DecodeCreative([]byte(creative.AdParameters))
	if err != nil {
		u.mu.Unlock()
		u.emitError(err)
		return
	}
	if params.VideoURL == "" {
		u.mu.Unlock()
		u.emitError(domain.ErrMissingMediaURL)
		return
	}

	// Size the surface to fill the container when one is provided.
	w, h := width, height
	if env.Slot != nil {
		w, h = env.Slot.Bounds()
	}

	surface := u.factory(params.VideoURL, w, h)
	surface.Bind(ports.SurfaceHandlers{
		OnProgress:    u.onProgress,
		OnComplete:    u.onComplete,
		OnClick:       u.onClick,
		OnInteraction: u.onInteraction,
	})
	if env.Slot != nil {
		surface.Attach(env.Slot)
	}

	u.params = params
	u.surface = surface
	u.volume = surface.Volume()
	u.state = domain.StateLoaded
	u.mu.Unlock()

	u.logger.Info("ad loaded",
		log.String("video_url", params.VideoURL),
		log.Int("width", w),
		log.Int("height", h),
		log.String("view_mode", viewMode),
	)
	u.bus.Emit(EventAdLoaded, nil)
}

// StartAd initiates playback. Valid from Loaded. The underlying playback
// begin operation is asynchronous: StartAd returns immediately and the
// AdStarted (with AdImpression) or AdError emission follows once the
// operation completes. A failed start leaves the state unchanged; there is
// no automatic retry.
func (u *Unit) StartAd() {
	u.mu.Lock()
	if u.state != domain.StateLoaded || u.surface == nil || u.starting {
		state := u.state
		u.mu.Unlock()
		u.logger.Warn("startAd ignored", log.String("state", state.String()))
		return
	}
	u.starting = true
	surface := u.surface
	u.mu.Unlock()

	go func() {
		err := surface.Play(context.Background())

		u.mu.Lock()
		u.starting = false
		if err != nil {
			u.mu.Unlock()
			u.emitError(domain.ErrPlaybackStart)
			return
		}
		if u.state != domain.StateLoaded || u.surface == nil {
			// Stopped while the start was in flight.
			u.mu.Unlock()
			surface.Pause()
			return
		}
		u.state = domain.StatePlaying
		u.mu.Unlock()

		u.bus.Emit(EventAdStarted, nil)
		u.bus.Emit(EventAdImpression, nil)
	}()
}

// PauseAd suspends playback and emits AdPaused. With no surface present it
// still emits the event and never panics.
func (u *Unit) PauseAd() {
	u.mu.Lock()
	if u.surface != nil && u.state == domain.StatePlaying {
		u.surface.Pause()
		u.state = domain.StatePaused
	}
	u.mu.Unlock()

	u.bus.Emit(EventAdPaused, nil)
}

// ResumeAd continues playback after PauseAd and emits AdPlaying. With no
// surface present it still emits the event and never panics.
func (u *Unit) ResumeAd() {
	u.mu.Lock()
	if u.surface != nil && u.state == domain.StatePaused {
		u.surface.Resume()
		u.state = domain.StatePlaying
	}
	u.mu.Unlock()

	u.bus.Emit(EventAdPlaying, nil)
}

// StopAd releases the playback surface and transitions to Stopped,
// emitting AdStopped. It is idempotent: if the session is already Stopped
// the call is a safe no-op with no duplicate emission. StopAd never fails.
func (u *Unit) StopAd() {
	u.mu.Lock()
	if u.state == domain.StateStopped {
		u.mu.Unlock()
		u.logger.Debug("stopAd ignored, already stopped")
		return
	}

	if u.surface != nil {
		u.surface.Pause()
		u.surface.Detach(u.slot)
		u.surface = nil
	}
	u.state = domain.StateStopped
	u.mu.Unlock()

	u.logger.Info("ad stopped")
	u.bus.Emit(EventAdStopped, nil)
}

// SkipAd skips the ad if the session is skip-eligible: it emits AdSkipped
// and then performs the full stop sequence. Before eligibility it is a safe
// no-op with no state change and no emission. The host should not present a
// skip control before it has seen AdSkippableStateChange, but calling this
// unconditionally is always safe.
func (u *Unit) SkipAd() {
	u.mu.Lock()
	skippable := u.skippable
	u.mu.Unlock()

	if !skippable {
		u.logger.Info("skipAd ignored, not skippable")
		return
	}

	u.bus.Emit(EventAdSkipped, nil)
	u.StopAd()
}

// ResizeAd is accepted for protocol completeness; the surface fills its
// slot and the simulated renderer has nothing to resize.
func (u *Unit) ResizeAd(width, height int, viewMode string) {
	u.logger.Debug("resizeAd",
		log.Int("width", width),
		log.Int("height", height),
		log.String("view_mode", viewMode),
	)
}

// ExpandAd is accepted for protocol completeness; this unit never expands.
func (u *Unit) ExpandAd() {
	u.logger.Debug("expandAd ignored")
}

// CollapseAd is accepted for protocol completeness; this unit never expands.
func (u *Unit) CollapseAd() {
	u.logger.Debug("collapseAd ignored")
}

// Subscribe binds a host callback to an event name, replacing any prior
// binding for that name. See [events.Bus.Subscribe].
func (u *Unit) Subscribe(event string, handler events.Handler, listener any) {
	u.bus.Subscribe(event, handler, listener)
}

// Unsubscribe removes the binding for an event name if present.
func (u *Unit) Unsubscribe(event string) {
	u.bus.Unsubscribe(event)
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (u *Unit) Status() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fromDomainState(u.state)
}

// GetAdSkippableState reports whether the session is currently skippable.
// The flag is monotonic: once true it stays true for the session.
func (u *Unit) GetAdSkippableState() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.skippable
}

// GetAdLinear reports that this unit is a linear (pre/mid/post-roll) ad.
func (u *Unit) GetAdLinear() bool { return true }

// GetAdExpanded reports that this unit is never in an expanded state.
func (u *Unit) GetAdExpanded() bool { return false }

// GetAdIcons reports that this unit renders no icons of its own.
func (u *Unit) GetAdIcons() bool { return false }

// GetAdCompanions returns the companion banner markup; this unit has none.
func (u *Unit) GetAdCompanions() string { return "" }

// GetAdDuration returns the media duration in seconds, or
// [ports.DurationUnknown] when no surface is loaded.
func (u *Unit) GetAdDuration() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.surface == nil {
		return ports.DurationUnknown
	}
	return u.surface.Duration()
}

// GetAdRemainingTime returns the seconds of playback remaining, or
// [ports.DurationUnknown] when no surface is loaded or the duration is
// not yet known.
func (u *Unit) GetAdRemainingTime() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.surface == nil {
		return ports.DurationUnknown
	}
	dur := u.surface.Duration()
	if dur <= 0 {
		return ports.DurationUnknown
	}
	remaining := dur - u.surface.Position()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetAdVolume returns the current playback volume in [0, 1]. Sessions
// start muted because autoplay policies forbid unmuted autoplay.
func (u *Unit) GetAdVolume() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.surface != nil {
		return u.surface.Volume()
	}
	return u.volume
}

// SetAdVolume sets the playback volume, clamped to [0, 1], and confirms
// with an AdVolumeChange emission. It has no state-machine consequence.
func (u *Unit) SetAdVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	u.mu.Lock()
	u.volume = v
	if u.surface != nil {
		u.surface.SetVolume(v)
	}
	u.mu.Unlock()

	u.bus.Emit(EventAdVolumeChange, nil)
}

// GetAdWidth returns the current render width in pixels.
func (u *Unit) GetAdWidth() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.slot != nil {
		w, _ := u.slot.Bounds()
		return w
	}
	return u.width
}

// GetAdHeight returns the current render height in pixels.
func (u *Unit) GetAdHeight() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.slot != nil {
		_, h := u.slot.Bounds()
		return h
	}
	return u.height
}

// emitError reports a failure to the host through the event channel. The
// protocol gives the host no way to catch errors, so this is the only
// failure path any public method takes.
func (u *Unit) emitError(err error) {
	u.logger.Error("ad error", log.Err(err))
	u.bus.Emit(EventAdError, AdErrorData{Message: err.Error()})
}
