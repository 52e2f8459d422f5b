// Package cli implements the command-line interface for kcbs-events.
//
// The cli package provides the Cobra-based CLI that coordinates config,
// client, extractor, and report packages for one search run. It is also the
// degradation boundary: configuration errors fail fast before any network
// call, while fetch and decode failures are logged and become an empty
// report with a non-success exit code.
package cli
