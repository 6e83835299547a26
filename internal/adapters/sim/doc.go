// Package sim provides a clock-driven, in-memory implementation of the
// playback ports for the reference harness and for tests.
//
// [Surface] behaves like a real inline video element without decoding
// anything: Play blocks for a configurable startup latency, then a ticker
// goroutine advances the playback position and delivers progress signals
// until the configured media duration is reached, at which point a single
// completion signal fires. [Slot] is an in-memory container that records
// which surface occupies it, so tests can verify attach and detach side
// effects.
package sim
