// Package log provides the structured logging abstraction used across the
// ad unit.
//
// The [Logger] interface decouples the unit from any concrete logging
// library. The repo ships two implementations: [ZerologAdapter] for real
// output and [NoopLogger] for embedding the unit silently (the default;
// a library must not write to the host's stderr unless asked to).
package log
