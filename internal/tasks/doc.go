// Package tasks implements the client-side workflows of the candidate sync tool:
// batch resume uploads and CRM list synchronization, with real-time progress
// reporting to the CLI and TUI layers.
//
// # Upload Pipeline
//
// [UploadEngine] drives the multi-file ingest workflow:
//
//  1. [UploadEngine.PrepareBatch] : validates files locally (type, size)
//     - Accepted files become queued [UploadItem] records, submission order
//     - Rejected files never produce an item; reasons are returned
//
//  2. [UploadEngine.Run] : uploads every queued item through a worker pool
//     - One independent request per file, paced by a rate limiter
//     - Identifier-scoped [ItemUpdate] events stream per-file progress
//     - Each file settles independently in succeeded or failed
//
// The [Batch] collection applies updates as functional replacements of the
// single matching item, keeping concurrent uploads from interleaving
// destructively. Status transitions are one-way and terminal states are
// immutable.
//
// # List Sync
//
// [ListSyncEngine] owns the two-step create-or-resolve then attach workflow
// and the catalog fetch. Local validation (blank or duplicate names, empty
// selections) happens before any network call; an attach failure after a
// successful create surfaces as a partial outcome distinct from outright
// failure. Operations are non-reentrant while one is in flight.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, and messages.
// Per-file upload ticks use [ItemUpdate] instead, keyed by item identifier;
// progress ticks are dropped when the channel is full but status
// transitions always land.
package tasks
