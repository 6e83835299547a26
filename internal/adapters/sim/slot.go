package sim

import (
	"sync"

	"github.com/admesh-labs/adunit/internal/ports"
)

// Slot is an in-memory ports.Slot that records which surface occupies it.
type Slot struct {
	mu       sync.Mutex
	width    int
	height   int
	occupant ports.PlaybackSurface
}

var _ ports.Slot = (*Slot)(nil)

// NewSlot creates a slot with the given pixel dimensions.
func NewSlot(width, height int) *Slot {
	return &Slot{width: width, height: height}
}

// Add records that the surface now occupies the slot.
func (sl *Slot) Add(s ports.PlaybackSurface) {
	sl.mu.Lock()
	sl.occupant = s
	sl.mu.Unlock()
}

// Remove records that the surface left the slot. Removing a surface that
// is not the current occupant is a no-op.
func (sl *Slot) Remove(s ports.PlaybackSurface) {
	sl.mu.Lock()
	if sl.occupant == s {
		sl.occupant = nil
	}
	sl.mu.Unlock()
}

// Bounds returns the slot dimensions in pixels.
func (sl *Slot) Bounds() (int, int) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.width, sl.height
}

// Occupied reports whether a surface is currently attached.
func (sl *Slot) Occupied() bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.occupant != nil
}
