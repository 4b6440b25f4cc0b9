// Package makersnap captures structured snapshots of public MakerWorld
// profile pages. It drives a headless browser to a profile URL, waits for
// the client-rendered model grid to materialize, and extracts a normalized
// profile record (account name, point total, per-model metrics) together
// with selector diagnostics for markup-drift troubleshooting.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package makersnap
