// Package domain defines the core business entities for Shippa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entry: One release input file with its behaviour flags
//   - Manifest: The validated set of input files and flag memberships
//   - Heading: A top-level changelog heading occurrence
//   - Release: A published release recorded in history
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
