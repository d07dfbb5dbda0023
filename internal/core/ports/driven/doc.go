// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FileSystem: Read-only checks and content I/O over input files
//   - Renderer: Converts one markup format (org, markdown) to plain/HTML/GFM
//   - RendererRegistry: Selects the renderer for a format
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the release pipeline degrades gracefully:
//
//   - Publisher: GitHub release publishing. Without it, the run stops after
//     the archive is built (--skip-publish behaviour).
//   - VCS: Post-release version bump commit. Without it, bumps stay local.
//   - HistoryStore: Local record of published releases.
//   - Archiver: Distributable archive creation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or markup package
package driven
