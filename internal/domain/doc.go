// Package domain contains the core domain entities and value objects for the
// ad unit.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (rendering, file system, logging)
// and contains only the protocol's data model and invariants.
//
// # Entities
//
//   - [AdState]: The lifecycle state of a single ad session
//   - [SessionParams]: Immutable creative parameters decoded during init
//   - [SkipOffset]: When (if ever) the session becomes skippable
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on protocol rules and invariants
//   - Testable without mocks or external systems
package domain
