// Package models defines domain entities and persistence interfaces for the cvx candidate sync client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Candidate] : Parsed resume record returned by the parser service
//   - [SearchResult] : Candidate search hit with matched keywords
//   - [ExternalList] : Named contact list in the downstream CRM
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Session] : Operator login session persisted across invocations
//   - [PersistedCandidate] : Locally cached parsed candidates
//   - [PersistedList] : Cached CRM list catalog entries with fetch timestamps
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
