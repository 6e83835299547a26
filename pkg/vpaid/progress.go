package vpaid

import (
	"math"

	"github.com/admesh-labs/adunit/pkg/log"
)

// Quartile thresholds and their events, in ascending order. A single tick
// that jumps past several thresholds (a seek) must still fire each un-fired
// event exactly once, in this order.
var (
	quartileThresholds = [...]float64{0.25, 0.5, 0.75}
	quartileEvents     = [...]string{
		EventAdVideoFirstQuartile,
		EventAdVideoMidpoint,
		EventAdVideoThirdQuartile,
	}
)

// onProgress translates a raw position update into the required one-shot
// notifications: the skip-eligibility edge first, then any newly crossed
// quartiles in ascending order. Ticks arriving after StopAd released the
// surface are ignored.
func (u *Unit) onProgress(position, duration float64) {
	u.mu.Lock()
	if u.surface == nil {
		u.mu.Unlock()
		return
	}

	if duration <= 0 || math.IsInf(duration, 0) || math.IsNaN(duration) || math.IsNaN(position) {
		u.mu.Unlock()
		u.logger.Debug("progress tick without usable duration",
			log.Float64("position", position),
			log.Float64("duration", duration),
		)
		return
	}

	var emit []string

	if after, ok := u.params.SkipOffset.Seconds(); ok && !u.skippable && position >= after {
		u.skippable = true
		emit = append(emit, EventAdSkippableStateChange)
	}

	progress := position / duration
	for i := range quartileThresholds {
		if progress >= quartileThresholds[i] && !u.quartiles[i] {
			u.quartiles[i] = true
			emit = append(emit, quartileEvents[i])
		}
	}
	u.mu.Unlock()

	for _, event := range emit {
		u.bus.Emit(event, nil)
	}
}

// onComplete handles the surface's end-of-media signal. It emits
// AdVideoComplete but does not transition state: the host is expected to
// call StopAd afterward, which avoids racing a host-issued stop.
func (u *Unit) onComplete() {
	u.mu.Lock()
	if u.surface == nil || u.completed {
		u.mu.Unlock()
		return
	}
	u.completed = true
	u.mu.Unlock()

	u.bus.Emit(EventAdVideoComplete, nil)
}

// onClick forwards a viewer click to the host. The unit never opens the
// click-through URL itself, so PlayerHandles is always true.
func (u *Unit) onClick(id string) {
	u.mu.Lock()
	if u.surface == nil {
		u.mu.Unlock()
		return
	}
	url := u.params.ClickThroughURL
	u.mu.Unlock()

	u.bus.Emit(EventAdClickThru, ClickThruData{
		URL:           url,
		ID:            id,
		PlayerHandles: true,
	})
}

// onInteraction forwards a non-click viewer interaction to the host.
// It carries no state-machine consequence.
func (u *Unit) onInteraction(id string) {
	u.mu.Lock()
	if u.surface == nil {
		u.mu.Unlock()
		return
	}
	u.mu.Unlock()

	u.bus.Emit(EventAdInteraction, InteractionData{ID: id})
}
