// Package events provides the subscription registry the host uses to
// receive notifications from the ad unit.
//
// This is deliberately not a general publish/subscribe mechanism: the
// protocol's event contract binds at most one callback per event name, so
// [Bus] is a single-slot registry. Subscribing to a name that already has
// a binding replaces it, and emitting to a name with no binding is silently
// dropped: the unit emits its full notification sequence regardless of
// which events the host chose to listen to.
package events
