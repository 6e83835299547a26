package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/admesh-labs/adunit/internal/ports"
)

// Defaults applied by NewSurface for zero-valued config fields.
const (
	DefaultDuration       = 30 * time.Second
	DefaultTickInterval   = 250 * time.Millisecond
	DefaultStartupLatency = 50 * time.Millisecond
)

// SurfaceConfig configures a simulated playback surface.
type SurfaceConfig struct {
	// MediaURL is the resource the surface pretends to play.
	MediaURL string

	// Width and Height are the render dimensions in pixels.
	Width  int
	Height int

	// Duration is the simulated media duration.
	Duration time.Duration

	// TickInterval is the interval between progress signals.
	TickInterval time.Duration

	// StartupLatency is how long Play blocks before playback begins,
	// standing in for buffering and decoder spin-up.
	StartupLatency time.Duration

	// FailStart makes Play return an error, simulating an unavailable
	// resource.
	FailStart bool
}

// Surface is a simulated ports.PlaybackSurface. Surfaces start muted.
type Surface struct {
	mu       sync.Mutex
	cfg      SurfaceConfig
	handlers ports.SurfaceHandlers
	volume   float64

	started   bool
	playing   bool
	completed bool
	elapsed   time.Duration
	resumedAt time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

var _ ports.PlaybackSurface = (*Surface)(nil)

// NewSurface creates a simulated surface, filling zero-valued config
// fields with defaults.
func NewSurface(cfg SurfaceConfig) *Surface {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.StartupLatency <= 0 {
		cfg.StartupLatency = DefaultStartupLatency
	}
	return &Surface{
		cfg:  cfg,
		stop: make(chan struct{}),
	}
}

// Bind registers the signal handlers. Must be called before Play.
func (s *Surface) Bind(h ports.SurfaceHandlers) {
	s.mu.Lock()
	s.handlers = h
	s.mu.Unlock()
}

// Play begins simulated playback after the configured startup latency.
// It returns an error when configured to fail, and is a no-op when
// playback already started.
func (s *Surface) Play(ctx context.Context) error {
	s.mu.Lock()
	if s.cfg.FailStart {
		s.mu.Unlock()
		return fmt.Errorf("sim: media unavailable: %s", s.cfg.MediaURL)
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stop:
		return nil
	case <-time.After(s.cfg.StartupLatency):
	}

	s.mu.Lock()
	s.started = true
	s.playing = true
	s.resumedAt = time.Now()
	s.mu.Unlock()

	go s.run()
	return nil
}

// run is the tick loop. It delivers progress signals while playing and a
// single completion signal when the position reaches the media duration.
func (s *Surface) run() {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if !s.playing {
			s.mu.Unlock()
			continue
		}

		pos := s.positionLocked()
		finished := pos >= s.cfg.Duration
		if finished {
			pos = s.cfg.Duration
			s.elapsed = s.cfg.Duration
			s.playing = false
			s.completed = true
		}
		h := s.handlers
		s.mu.Unlock()

		if h.OnProgress != nil {
			h.OnProgress(pos.Seconds(), s.cfg.Duration.Seconds())
		}
		if finished {
			if h.OnComplete != nil {
				h.OnComplete()
			}
			return
		}
	}
}

// Pause suspends the simulated clock.
func (s *Surface) Pause() {
	s.mu.Lock()
	if s.playing {
		s.elapsed += time.Since(s.resumedAt)
		s.playing = false
	}
	s.mu.Unlock()
}

// Resume continues the simulated clock after Pause.
func (s *Surface) Resume() {
	s.mu.Lock()
	if s.started && !s.playing && !s.completed {
		s.resumedAt = time.Now()
		s.playing = true
	}
	s.mu.Unlock()
}

// Position returns the current playback position in seconds.
func (s *Surface) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked().Seconds()
}

func (s *Surface) positionLocked() time.Duration {
	pos := s.elapsed
	if s.playing {
		pos += time.Since(s.resumedAt)
	}
	if pos > s.cfg.Duration {
		pos = s.cfg.Duration
	}
	return pos
}

// Duration returns the simulated media duration in seconds.
func (s *Surface) Duration() float64 {
	return s.cfg.Duration.Seconds()
}

// SetVolume sets the simulated volume.
func (s *Surface) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = v
	s.mu.Unlock()
}

// Volume returns the simulated volume. Surfaces start muted.
func (s *Surface) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Attach inserts the surface into the slot.
func (s *Surface) Attach(slot ports.Slot) {
	slot.Add(s)
}

// Detach removes the surface from the slot and stops the tick loop.
// No signals are delivered after Detach returns. Safe to call twice.
func (s *Surface) Detach(slot ports.Slot) {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()

	if slot != nil {
		slot.Remove(s)
	}
}

// Click injects a simulated viewer click. The harness uses this to drive
// the click-through path without a real input device.
func (s *Surface) Click(id string) {
	s.mu.Lock()
	h := s.handlers
	s.mu.Unlock()
	if h.OnClick != nil {
		h.OnClick(id)
	}
}

// Interact injects a simulated non-click viewer interaction.
func (s *Surface) Interact(id string) {
	s.mu.Lock()
	h := s.handlers
	s.mu.Unlock()
	if h.OnInteraction != nil {
		h.OnInteraction(id)
	}
}
