package domain

import "errors"

// Domain errors represent failure conditions inside the ad unit. None of
// them cross the host boundary directly: the host only learns of failures
// through the AdError event, so these exist for wrapping, logging, and
// errors.Is checks inside the unit and its tests.
var (
	// ErrParameterDecode indicates a malformed creative parameter payload.
	ErrParameterDecode = errors.New("adunit: creative parameter decode failed")

	// ErrMissingMediaURL indicates the creative payload carried no video URL.
	ErrMissingMediaURL = errors.New("adunit: creative has no video URL")

	// ErrPlaybackStart indicates the playback surface failed to begin playback.
	ErrPlaybackStart = errors.New("adunit: playback failed to start")
)
