// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SessionRepository] : Operator login session persisted across invocations
//   - [CandidateRepository] : Parsed candidate caching with remote-id lookups
//   - [ListRepository] : CRM list catalog caching with fetch timestamps
//   - [SyncJobRepository] : Sync operation history with status tracking
//
// Sequence numbers provide stable, human-readable ordering (e.g., candidate #42, list #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
