// Package services contains the core release-packaging logic:
// manifest parsing and validation, changelog note extraction,
// version rewriting, and the release orchestrator that glues the
// pipeline together. Services depend only on domain types and
// driven ports; all infrastructure lives behind adapters.
package services
