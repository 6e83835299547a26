package vpaid_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/admesh-labs/adunit/pkg/vpaid"
)

// fakeSurface implements the playback surface port with manually injected
// signals, so tests control every tick.
type fakeSurface struct {
	mu       sync.Mutex
	handlers vpaid.SurfaceHandlers

	playErr     error
	playCalls   int
	pauseCalls  int
	resumeCalls int
	detachCalls int
	volume      float64
	position    float64
	duration    float64
}

func (f *fakeSurface) Play(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playCalls++
	return f.playErr
}

func (f *fakeSurface) Pause() {
	f.mu.Lock()
	f.pauseCalls++
	f.mu.Unlock()
}

func (f *fakeSurface) Resume() {
	f.mu.Lock()
	f.resumeCalls++
	f.mu.Unlock()
}

func (f *fakeSurface) Position() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeSurface) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeSurface) SetVolume(v float64) {
	f.mu.Lock()
	f.volume = v
	f.mu.Unlock()
}

func (f *fakeSurface) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

func (f *fakeSurface) Bind(h vpaid.SurfaceHandlers) {
	f.mu.Lock()
	f.handlers = h
	f.mu.Unlock()
}

func (f *fakeSurface) Attach(slot vpaid.Slot) {
	slot.Add(f)
}

func (f *fakeSurface) Detach(slot vpaid.Slot) {
	f.mu.Lock()
	f.detachCalls++
	f.mu.Unlock()
	if slot != nil {
		slot.Remove(f)
	}
}

// tick injects a progress signal as the surface would.
func (f *fakeSurface) tick(position, duration float64) {
	f.mu.Lock()
	f.position = position
	f.duration = duration
	h := f.handlers
	f.mu.Unlock()
	if h.OnProgress != nil {
		h.OnProgress(position, duration)
	}
}

func (f *fakeSurface) complete() {
	f.mu.Lock()
	h := f.handlers
	f.mu.Unlock()
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

func (f *fakeSurface) click(id string) {
	f.mu.Lock()
	h := f.handlers
	f.mu.Unlock()
	if h.OnClick != nil {
		h.OnClick(id)
	}
}

func (f *fakeSurface) interact(id string) {
	f.mu.Lock()
	h := f.handlers
	f.mu.Unlock()
	if h.OnInteraction != nil {
		h.OnInteraction(id)
	}
}

// fakeSlot records attach and detach side effects.
type fakeSlot struct {
	mu       sync.Mutex
	width    int
	height   int
	adds     int
	removes  int
	occupied bool
}

func (sl *fakeSlot) Add(s vpaid.PlaybackSurface) {
	sl.mu.Lock()
	sl.adds++
	sl.occupied = true
	sl.mu.Unlock()
}

func (sl *fakeSlot) Remove(s vpaid.PlaybackSurface) {
	sl.mu.Lock()
	sl.removes++
	sl.occupied = false
	sl.mu.Unlock()
}

func (sl *fakeSlot) Bounds() (int, int) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.width, sl.height
}

func (sl *fakeSlot) Occupied() bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.occupied
}

// recorder captures every emission in order.
type recorder struct {
	mu     sync.Mutex
	events []string
	data   map[string][]any
}

func newRecorder(u *vpaid.Unit) *recorder {
	r := &recorder{data: make(map[string][]any)}
	for _, name := range []string{
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
	} {
		event := name
		u.Subscribe(event, func(_, data any) {
			r.mu.Lock()
			r.events = append(r.events, event)
			r.data[event] = append(r.data[event], data)
			r.mu.Unlock()
		}, nil)
	}
	return r
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.events...)
}

func (r *recorder) Count(event string) int {
	n := 0
	for _, e := range r.Events() {
		if e == event {
			n++
		}
	}
	return n
}

func (r *recorder) Payloads(event string) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any{}, r.data[event]...)
}

func (r *recorder) Clear() {
	r.mu.Lock()
	r.events = nil
	r.data = make(map[string][]any)
	r.mu.Unlock()
}

// waitFor polls cond until it holds or the deadline expires.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

const validCreative = `{"videoUrl":"https://cdn.example/a.mp4","clickThroughUrl":"https://example.com","skippableAfter":5}`

func newTestUnit(creative string) (*vpaid.Unit, *fakeSurface, *fakeSlot, *recorder) {
	surface := &fakeSurface{}
	slot := &fakeSlot{width: 640, height: 360}
	unit := vpaid.New(vpaid.WithSurfaceFactory(func(mediaURL string, w, h int) vpaid.PlaybackSurface {
		return surface
	}))
	rec := newRecorder(unit)
	if creative != "" {
		unit.InitAd(640, 360, vpaid.ViewModeNormal, 500,
			vpaid.CreativeData{AdParameters: creative},
			vpaid.EnvironmentVars{Slot: slot})
	}
	return unit, surface, slot, rec
}

// startPlaying drives the unit into Playing and clears the recorder.
func startPlaying(t *testing.T, unit *vpaid.Unit, rec *recorder) {
	t.Helper()
	unit.StartAd()
	waitFor(t, func() bool { return unit.Status() == vpaid.StatePlaying }, "playing state")
	rec.Clear()
}

func TestHandshakeVersion(t *testing.T) {
	unit, _, _, rec := newTestUnit("")

	got := unit.HandshakeVersion("1.1")
	if got != "2.0" {
		t.Errorf("HandshakeVersion() = %q, want %q", got, "2.0")
	}
	if unit.Status() != vpaid.StateUninitialized {
		t.Errorf("state = %v after handshake, want Uninitialized", unit.Status())
	}
	if len(rec.Events()) != 0 {
		t.Errorf("handshake emitted %v, want no events", rec.Events())
	}
}

func TestInitAd_Success(t *testing.T) {
	unit, surface, slot, rec := newTestUnit(validCreative)

	if got := rec.Events(); len(got) != 1 || got[0] != vpaid.EventAdLoaded {
		t.Fatalf("events = %v, want [AdLoaded]", got)
	}
	if unit.Status() != vpaid.StateLoaded {
		t.Errorf("state = %v, want Loaded", unit.Status())
	}
	if !slot.Occupied() {
		t.Error("surface not attached to slot")
	}
	surface.mu.Lock()
	bound := surface.handlers.OnProgress != nil && surface.handlers.OnComplete != nil
	surface.mu.Unlock()
	if !bound {
		t.Error("surface handlers not bound")
	}
}

func TestInitAd_DecodeError(t *testing.T) {
	unit, _, slot, rec := newTestUnit(`{"videoUrl": not json`)

	if got := rec.Events(); len(got) != 1 || got[0] != vpaid.EventAdError {
		t.Fatalf("events = %v, want [AdError]", got)
	}
	if unit.Status() != vpaid.StateUninitialized {
		t.Errorf("state = %v, want Uninitialized", unit.Status())
	}
	if slot.adds != 0 {
		t.Errorf("slot.adds = %d, want 0 (no surface must be created)", slot.adds)
	}
}

func TestInitAd_MissingVideoURL(t *testing.T) {
	unit, _, slot, rec := newTestUnit(`{"clickThroughUrl":"https://example.com"}`)

	if got := rec.Events(); len(got) != 1 || got[0] != vpaid.EventAdError {
		t.Fatalf("events = %v, want [AdError]", got)
	}
	payloads := rec.Payloads(vpaid.EventAdError)
	if len(payloads) != 1 {
		t.Fatalf("AdError payloads = %d, want 1", len(payloads))
	}
	if d, ok := payloads[0].(vpaid.AdErrorData); !ok || d.Message == "" {
		t.Errorf("AdError payload = %#v, want AdErrorData with message", payloads[0])
	}
	if unit.Status() != vpaid.StateUninitialized {
		t.Errorf("state = %v, want Uninitialized", unit.Status())
	}
	if slot.adds != 0 {
		t.Errorf("slot.adds = %d, want 0", slot.adds)
	}
}

func TestInitAd_SecondCallIgnored(t *testing.T) {
	unit, _, slot, rec := newTestUnit(validCreative)
	rec.Clear()

	unit.InitAd(640, 360, vpaid.ViewModeNormal, 500,
		vpaid.CreativeData{AdParameters: validCreative},
		vpaid.EnvironmentVars{Slot: &fakeSlot{}})

	if got := rec.Events(); len(got) != 0 {
		t.Errorf("second initAd emitted %v, want nothing", got)
	}
	if slot.adds != 1 {
		t.Errorf("slot.adds = %d, want 1", slot.adds)
	}
}

func TestStartAd_Success(t *testing.T) {
	unit, surface, _, rec := newTestUnit(validCreative)
	rec.Clear()

	unit.StartAd()

	waitFor(t, func() bool { return rec.Count(vpaid.EventAdImpression) == 1 }, "AdImpression")
	if got := rec.Events(); len(got) != 2 || got[0] != vpaid.EventAdStarted || got[1] != vpaid.EventAdImpression {
		t.Errorf("events = %v, want [AdStarted AdImpression]", got)
	}
	if unit.Status() != vpaid.StatePlaying {
		t.Errorf("state = %v, want Playing", unit.Status())
	}
	surface.mu.Lock()
	calls := surface.playCalls
	surface.mu.Unlock()
	if calls != 1 {
		t.Errorf("playCalls = %d, want 1", calls)
	}
}

func TestStartAd_PlaybackFailure(t *testing.T) {
	unit, surface, _, rec := newTestUnit(validCreative)
	surface.playErr = errors.New("resource unavailable")
	rec.Clear()

	unit.StartAd()

	waitFor(t, func() bool { return rec.Count(vpaid.EventAdError) == 1 }, "AdError")
	if rec.Count(vpaid.EventAdStarted) != 0 {
		t.Error("AdStarted emitted despite playback failure")
	}
	if unit.Status() != vpaid.StateLoaded {
		t.Errorf("state = %v after failed start, want Loaded", unit.Status())
	}
}

func TestStartAd_BeforeInitIgnored(t *testing.T) {
	unit, _, _, rec := newTestUnit("")

	unit.StartAd()

	time.Sleep(10 * time.Millisecond)
	if got := rec.Events(); len(got) != 0 {
		t.Errorf("events = %v, want nothing", got)
	}
	if unit.Status() != vpaid.StateUninitialized {
		t.Errorf("state = %v, want Uninitialized", unit.Status())
	}
}

func TestPauseAndResume(t *testing.T) {
	unit, surface, _, rec := newTestUnit(validCreative)
	startPlaying(t, unit, rec)

	unit.PauseAd()
	if got := rec.Events(); len(got) != 1 || got[0] != vpaid.EventAdPaused {
		t.Fatalf("events = %v, want [AdPaused]", got)
	}
	if unit.Status() != vpaid.StatePaused {
		t.Errorf("state = %v, want Paused", unit.Status())
	}
	surface.mu.Lock()
	paused := surface.pauseCalls
	surface.mu.Unlock()
	if paused != 1 {
		t.Errorf("pauseCalls = %d, want 1", paused)
	}

	unit.ResumeAd()
	if got := rec.Events(); len(got) != 2 || got[1] != vpaid.EventAdPlaying {
		t.Fatalf("events = %v, want [AdPaused AdPlaying]", got)
	}
	if unit.Status() != vpaid.StatePlaying {
		t.Errorf("state = %v, want Playing", unit.Status())
	}
}

func TestPauseAd_WithoutSurface(t *testing.T) {
	unit, _, _, rec := newTestUnit("")

	unit.PauseAd()
	unit.ResumeAd()

	if got := rec.Events(); len(got) != 2 || got[0] != vpaid.EventAdPaused || got[1] != vpaid.EventAdPlaying {
		t.Errorf("events = %v, want [AdPaused AdPlaying]", got)
	}
	if unit.Status() != vpaid.StateUninitialized {
		t.Errorf("state = %v, want Uninitialized (no transition without surface)", unit.Status())
	}
}

func TestStopAd_Idempotent(t *testing.T) {
	unit, surface, slot, rec := newTestUnit(validCreative)
	startPlaying(t, unit, rec)

	unit.StopAd()
	unit.StopAd()

	if got := rec.Count(vpaid.EventAdStopped); got != 1 {
		t.Errorf("AdStopped count = %d after double stop, want 1", got)
	}
	if unit.Status() != vpaid.StateStopped {
		t.Errorf("state = %v, want Stopped", unit.Status())
	}
	surface.mu.Lock()
	detached := surface.detachCalls
	surface.mu.Unlock()
	if detached != 1 {
		t.Errorf("detachCalls = %d, want 1", detached)
	}
	if slot.Occupied() {
		t.Error("slot still occupied after stop")
	}
}

func TestStopAd_WithoutSurface(t *testing.T) {
	unit, _, _, rec := newTestUnit("")

	unit.StopAd()

	if got := rec.Events(); len(got) != 1 || got[0] != vpaid.EventAdStopped {
		t.Errorf("events = %v, want [AdStopped]", got)
	}
	if unit.Status() != vpaid.StateStopped {
		t.Errorf("state = %v, want Stopped", unit.Status())
	}
}

func TestSkipAd_BeforeEligibility(t *testing.T) {
	unit, _, _, rec := newTestUnit(validCreative)
	startPlaying(t, unit, rec)

	unit.SkipAd()

	if got := rec.Events(); len(got) != 0 {
		t.Errorf("events = %v, want nothing before eligibility", got)
	}
	if unit.Status() != vpaid.StatePlaying {
		t.Errorf("state = %v, want Playing", unit.Status())
	}
}

func TestSkipAd_AfterEligibility(t *testing.T) {
	unit, surface, _, rec := newTestUnit(validCreative)
	startPlaying(t, unit, rec)

	surface.tick(5, 10)
	rec.Clear()

	unit.SkipAd()

	if got := rec.Events(); len(got) != 2 || got[0] != vpaid.EventAdSkipped || got[1] != vpaid.EventAdStopped {
		t.Fatalf("events = %v, want [AdSkipped AdStopped]", got)
	}
	if unit.Status() != vpaid.StateStopped {
		t.Errorf("state = %v, want Stopped", unit.Status())
	}
}

func TestSetAdVolume(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 0.5, 0.5},
		{"clamped low", -0.3, 0},
		{"clamped high", 1.7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, _, _, rec := newTestUnit(validCreative)
			rec.Clear()

			unit.SetAdVolume(tt.in)

			if got := unit.GetAdVolume(); got != tt.want {
				t.Errorf("GetAdVolume() = %v, want %v", got, tt.want)
			}
			if rec.Count(vpaid.EventAdVolumeChange) != 1 {
				t.Errorf("AdVolumeChange count = %d, want 1", rec.Count(vpaid.EventAdVolumeChange))
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	unit, surface, _, _ := newTestUnit(validCreative)

	if !unit.GetAdLinear() {
		t.Error("GetAdLinear() = false, want true")
	}
	if unit.GetAdExpanded() {
		t.Error("GetAdExpanded() = true, want false")
	}
	if unit.GetAdIcons() {
		t.Error("GetAdIcons() = true, want false")
	}
	if got := unit.GetAdCompanions(); got != "" {
		t.Errorf("GetAdCompanions() = %q, want empty", got)
	}
	if got := unit.GetAdWidth(); got != 640 {
		t.Errorf("GetAdWidth() = %d, want 640", got)
	}
	if got := unit.GetAdHeight(); got != 360 {
		t.Errorf("GetAdHeight() = %d, want 360", got)
	}
	if unit.GetAdSkippableState() {
		t.Error("GetAdSkippableState() = true before offset reached")
	}

	surface.tick(4, 10)
	if got := unit.GetAdDuration(); got != 10 {
		t.Errorf("GetAdDuration() = %v, want 10", got)
	}
	if got := unit.GetAdRemainingTime(); got != 6 {
		t.Errorf("GetAdRemainingTime() = %v, want 6", got)
	}
}

func TestAccessors_NoSurface(t *testing.T) {
	unit, _, _, _ := newTestUnit("")

	if got := unit.GetAdDuration(); got != -2 {
		t.Errorf("GetAdDuration() = %v, want -2", got)
	}
	if got := unit.GetAdRemainingTime(); got != -2 {
		t.Errorf("GetAdRemainingTime() = %v, want -2", got)
	}
}

func TestNoOpControls(t *testing.T) {
	unit, _, _, rec := newTestUnit(validCreative)
	rec.Clear()

	unit.ResizeAd(1280, 720, vpaid.ViewModeFullscreen)
	unit.ExpandAd()
	unit.CollapseAd()

	if got := rec.Events(); len(got) != 0 {
		t.Errorf("no-op controls emitted %v, want nothing", got)
	}
	if unit.Status() != vpaid.StateLoaded {
		t.Errorf("state = %v, want Loaded", unit.Status())
	}
}
