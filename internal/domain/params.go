package domain

import (
	"encoding/json"
	"fmt"
)

// SessionParams holds the creative parameters for one ad session.
// They are decoded once during initialization and read-only thereafter.
type SessionParams struct {
	// VideoURL is the location of the media resource. Required.
	VideoURL string

	// ClickThroughURL is the landing page opened on a click signal.
	// Empty means the creative has no click-through destination.
	ClickThroughURL string

	// SkipOffset describes when the session becomes skippable.
	SkipOffset SkipOffset
}

// SkipOffset is an explicit sum type for skip eligibility: either the
// session is never skippable, or it becomes skippable after a fixed number
// of seconds of playback. Absent or non-positive values in the creative
// payload decode to the never-skippable variant, so malformed sentinel
// values cannot be misread as real offsets.
type SkipOffset struct {
	seconds float64
	valid   bool
}

// SkipAfter returns an offset that makes the session skippable once
// playback has reached the given number of seconds.
func SkipAfter(seconds float64) SkipOffset {
	if seconds <= 0 {
		return NeverSkippable()
	}
	return SkipOffset{seconds: seconds, valid: true}
}

// NeverSkippable returns the offset variant for sessions that can never
// be skipped.
func NeverSkippable() SkipOffset {
	return SkipOffset{}
}

// Never reports whether the session can never be skipped.
func (o SkipOffset) Never() bool {
	return !o.valid
}

// Seconds returns the skip offset in seconds. The second return value is
// false for the never-skippable variant.
func (o SkipOffset) Seconds() (float64, bool) {
	return o.seconds, o.valid
}

// creativePayload mirrors the JSON shape of the host-supplied parameter blob.
type creativePayload struct {
	VideoURL        string   `json:"videoUrl"`
	ClickThroughURL string   `json:"clickThroughUrl"`
	SkippableAfter  *float64 `json:"skippableAfter"`
}

// DecodeCreative parses a creative parameter blob into SessionParams.
// It validates JSON shape only; presence of the media URL is checked by
// the controller so the missing-resource case gets its own error.
func DecodeCreative(blob []byte) (SessionParams, error) {
	var p creativePayload
	if err := json.Unmarshal(blob, &p); err != nil {
		return SessionParams{}, fmt.Errorf("%w: %v", ErrParameterDecode, err)
	}

	offset := NeverSkippable()
	if p.SkippableAfter != nil {
		offset = SkipAfter(*p.SkippableAfter)
	}

	return SessionParams{
		VideoURL:        p.VideoURL,
		ClickThroughURL: p.ClickThroughURL,
		SkipOffset:      offset,
	}, nil
}
