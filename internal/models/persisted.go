package models

import (
	"fmt"
	"strings"
	"time"
)

// record holds the lifecycle fields shared by all persistent entities.
type record struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func newRecord(sequence int) record {
	now := time.Now()
	return record{sequence: sequence, createdAt: now, updatedAt: now}
}

func (r *record) ID() string                { return r.id }
func (r *record) Sequence() int             { return r.sequence }
func (r *record) CreatedAt() time.Time      { return r.createdAt }
func (r *record) UpdatedAt() time.Time      { return r.updatedAt }
func (r *record) DeletedAt() *time.Time     { return r.deletedAt }
func (r *record) SetID(id string)           { r.id = id }
func (r *record) SetCreatedAt(t time.Time)  { r.createdAt = t }
func (r *record) SetUpdatedAt(t time.Time)  { r.updatedAt = t }
func (r *record) SetDeletedAt(t *time.Time) { r.deletedAt = t }

// Session records the operator's login state. A single live session row is
// kept per database; logout soft-deletes it.
type Session struct {
	record
	username      string
	authenticated bool
}

// NewSession creates a session for the given operator.
func NewSession(sequence int, username string, authenticated bool) *Session {
	return &Session{record: newRecord(sequence), username: username, authenticated: authenticated}
}

func (s *Session) Username() string    { return s.username }
func (s *Session) Authenticated() bool { return s.authenticated }

func (s *Session) SetAuthenticated(v bool) { s.authenticated = v }

func (s *Session) Validate() error {
	if strings.TrimSpace(s.username) == "" {
		return fmt.Errorf("session username is required")
	}
	return nil
}

// PersistedCandidate is a locally cached parsed candidate keyed by the
// parser service's remote identifier.
type PersistedCandidate struct {
	record
	remoteID        string
	name            string
	email           string
	phone           string
	jobTitle        string
	skills          []string
	experienceYears int
	sourceFile      string
}

// NewPersistedCandidate caches a parsed [Candidate] along with the source
// filename it was parsed from.
func NewPersistedCandidate(sequence int, c Candidate, sourceFile string) *PersistedCandidate {
	return &PersistedCandidate{
		record:          newRecord(sequence),
		remoteID:        c.RemoteID,
		name:            c.Name,
		email:           c.Email,
		phone:           c.Phone,
		jobTitle:        c.JobTitle,
		skills:          append([]string(nil), c.Skills...),
		experienceYears: c.ExperienceYears,
		sourceFile:      sourceFile,
	}
}

func (p *PersistedCandidate) RemoteID() string     { return p.remoteID }
func (p *PersistedCandidate) Name() string         { return p.name }
func (p *PersistedCandidate) Email() string        { return p.email }
func (p *PersistedCandidate) Phone() string        { return p.phone }
func (p *PersistedCandidate) JobTitle() string     { return p.jobTitle }
func (p *PersistedCandidate) Skills() []string     { return append([]string(nil), p.skills...) }
func (p *PersistedCandidate) ExperienceYears() int { return p.experienceYears }
func (p *PersistedCandidate) SourceFile() string   { return p.sourceFile }

// Candidate reconstructs the DTO form of the cached record.
func (p *PersistedCandidate) Candidate() Candidate {
	return Candidate{
		RemoteID:        p.remoteID,
		Name:            p.name,
		Email:           p.email,
		Phone:           p.phone,
		JobTitle:        p.jobTitle,
		Skills:          p.Skills(),
		ExperienceYears: p.experienceYears,
	}
}

func (p *PersistedCandidate) Validate() error {
	if strings.TrimSpace(p.remoteID) == "" {
		return fmt.Errorf("candidate remote ID is required")
	}
	return nil
}

// Sync job statuses.
const (
	SyncStatusSucceeded = "succeeded"
	SyncStatusPartial   = "partial"
	SyncStatusFailed    = "failed"
)

// Sync job modes.
const (
	SyncModeCreate = "create"
	SyncModeAttach = "attach"
)

// SyncJob records the outcome of one list sync operation for local history.
type SyncJob struct {
	record
	mode      string
	listID    string
	listName  string
	requested int
	attached  int
	status    string
	errDetail string
}

// NewSyncJob creates a sync job record.
func NewSyncJob(sequence int, mode, listID, listName string, requested, attached int, status, errDetail string) *SyncJob {
	return &SyncJob{
		record:    newRecord(sequence),
		mode:      mode,
		listID:    listID,
		listName:  listName,
		requested: requested,
		attached:  attached,
		status:    status,
		errDetail: errDetail,
	}
}

func (j *SyncJob) Mode() string      { return j.mode }
func (j *SyncJob) ListID() string    { return j.listID }
func (j *SyncJob) ListName() string  { return j.listName }
func (j *SyncJob) Requested() int    { return j.requested }
func (j *SyncJob) Attached() int     { return j.attached }
func (j *SyncJob) Status() string    { return j.status }
func (j *SyncJob) ErrDetail() string { return j.errDetail }

func (j *SyncJob) Validate() error {
	if j.mode != SyncModeCreate && j.mode != SyncModeAttach {
		return fmt.Errorf("invalid sync mode: %q", j.mode)
	}
	switch j.status {
	case SyncStatusSucceeded, SyncStatusPartial, SyncStatusFailed:
	default:
		return fmt.Errorf("invalid sync status: %q", j.status)
	}
	return nil
}

// PersistedList is a cached CRM catalog entry.
type PersistedList struct {
	record
	listID    string
	name      string
	fetchedAt time.Time
}

// NewPersistedList caches an [ExternalList] fetched at the given time.
func NewPersistedList(sequence int, list ExternalList, fetchedAt time.Time) *PersistedList {
	return &PersistedList{record: newRecord(sequence), listID: list.ID, name: list.Name, fetchedAt: fetchedAt}
}

func (l *PersistedList) ListID() string       { return l.listID }
func (l *PersistedList) Name() string         { return l.name }
func (l *PersistedList) FetchedAt() time.Time { return l.fetchedAt }

func (l *PersistedList) SetFetchedAt(t time.Time) { l.fetchedAt = t }

// ExternalList reconstructs the DTO form of the cached record.
func (l *PersistedList) ExternalList() ExternalList {
	return ExternalList{ID: l.listID, Name: l.name}
}

func (l *PersistedList) Validate() error {
	if strings.TrimSpace(l.listID) == "" {
		return fmt.Errorf("list ID is required")
	}
	if strings.TrimSpace(l.name) == "" {
		return fmt.Errorf("list name is required")
	}
	return nil
}
