// Package ports defines the interfaces (ports) that connect the ad unit's
// core to infrastructure adapters.
//
// In Hexagonal Architecture, ports are the boundaries between the
// application core and the outside world. They define what the unit needs
// from its environment without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [PlaybackSurface]: A device capable of decoding and rendering a media
//     resource and reporting raw playback signals
//   - [Slot]: The host-owned container the surface renders into
//   - [SurfaceFactory]: Constructs a surface for a media resource
//
// The controller (pkg/vpaid) depends only on these interfaces. Adapters
// (internal/adapters) implement them, which keeps the lifecycle and
// event-emission logic independent of any concrete rendering technology
// and unit-testable with fakes.
package ports
