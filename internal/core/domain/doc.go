// Package domain defines the core business entities for docseek.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentID: Canonical archive-relative identifier of a stored file
//   - Document: A listed file materialised into a local scratch location
//   - MatchSet: De-duplicated set of matching document identifiers
//   - UploadResult: Outcome of an upload including verification state
//   - Session: Per-chat conversational state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
