// Package cli provides the interactive draftkeep command-line harness.
//
// It wires configuration, the local store bundle, and the services into an
// interactive REPL that works online and offline. Typical flow: scope the
// session to an organization with 'use', inspect the offline footprint, and
// export or import snapshot bundles.
//
// Key features:
//   - Offline summary and per-item draft/offline view
//   - Snapshot export to and import from the snapshot directory
//   - Explicitly confirmed bulk clear of offline data
//   - Freshness report and live connectivity status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
