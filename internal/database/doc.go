// Package database provides SQLite-based storage for scan summaries.
//
// Summaries saved here allow comparing a fresh report against earlier
// scans of the same project (e.g., tracking how the hardened image count
// evolves across rebuilds) without keeping the raw report files around.
//
// Design decision: We use modernc.org/sqlite because it is a pure Go
// driver; no cgo toolchain is needed to build or cross-compile the CLI.
package database
