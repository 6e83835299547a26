// Package vpaid implements the controllable side of the host-driven
// media-ad protocol: a [Unit] that a video player loads, initializes,
// drives through its lifecycle, and observes through the event contract.
//
// # Basic Usage
//
//	unit := vpaid.New(vpaid.WithLogger(logger))
//
//	unit.Subscribe(vpaid.EventAdLoaded, func(_, _ any) {
//	    unit.StartAd()
//	}, nil)
//
//	unit.Subscribe(vpaid.EventAdError, func(_, data any) {
//	    // inspect data.(vpaid.AdErrorData).Message
//	}, nil)
//
//	unit.InitAd(640, 360, vpaid.ViewModeNormal, 500,
//	    vpaid.CreativeData{AdParameters: `{"videoUrl":"https://cdn.example/a.mp4"}`},
//	    vpaid.EnvironmentVars{Slot: slot})
//
// # Failure Convention
//
// The host has no mechanism to catch errors from the unit, so no public
// method returns an error or panics. Every failure (malformed creative
// parameters, a missing media URL, a playback surface that cannot start)
// is reported through a single [EventAdError] emission carrying a
// human-readable message.
//
// # Concurrency
//
// All methods are safe for concurrent use. StartAd begins playback
// asynchronously: it returns immediately and the [EventAdStarted] or
// [EventAdError] emission follows from the playback goroutine. Event
// callbacks run outside the unit's lock, so a callback may call back into
// the unit (the usual host pattern of starting the ad from its AdLoaded
// handler works without deadlock).
package vpaid
