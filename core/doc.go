// Package core provides the foundational domain types and interfaces used by
// ArtifactMesh. It defines the core abstractions for:
//
//   - Artifacts (binary outputs of pipeline runs, addressed by run and name)
//   - Meta (descriptive records: version, size, checksum, creation time)
//   - Pluggable stores for artifact persistence (local disk, in-memory, object stores)
//
// The package intentionally keeps implementation concerns (filesystem layout,
// cloud clients, concrete backends) out of scope, exposing small interfaces to
// enable custom backends and extensions. All exported identifiers include
// concise documentation to aid discoverability and external consumption.
package core
