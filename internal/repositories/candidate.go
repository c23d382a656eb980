package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
)

// CandidateRepository caches parsed candidates so repeat uploads and detail
// views don't have to round-trip to the parsing service.
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new [CandidateRepository] with the given database connection
func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a new candidate into the database with generated ID and sequence
func (r *CandidateRepository) Create(candidate *models.PersistedCandidate) error {
	sequence, err := NextSequence(r.db, "candidates")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	candidate.SetID(id)

	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	skills, err := json.Marshal(candidate.Skills())
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	query := `
		INSERT INTO candidates (id, sequence, remote_id, name, email, phone, job_title, skills, experience_years, source_file, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, candidate.RemoteID(), candidate.Name(), candidate.Email(),
		candidate.Phone(), candidate.JobTitle(), string(skills), candidate.ExperienceYears(),
		candidate.SourceFile(), candidate.CreatedAt(), candidate.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}

	return nil
}

// Get retrieves a candidate by ID, excluding soft-deleted candidates
func (r *CandidateRepository) Get(id string) (*models.PersistedCandidate, error) {
	query := `
		SELECT id, sequence, remote_id, name, email, phone, job_title, skills, experience_years, source_file, created_at, updated_at, deleted_at
		FROM candidates
		WHERE id = ? AND deleted_at IS NULL
	`

	candidate, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("candidate not found: %s", id)
	}
	return candidate, err
}

// GetByRemoteID retrieves a candidate by the identifier assigned by the
// parsing service, or nil when the candidate hasn't been cached.
func (r *CandidateRepository) GetByRemoteID(remoteID string) (*models.PersistedCandidate, error) {
	query := `
		SELECT id, sequence, remote_id, name, email, phone, job_title, skills, experience_years, source_file, created_at, updated_at, deleted_at
		FROM candidates
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	candidate, err := r.scanOne(r.db.QueryRow(query, remoteID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return candidate, err
}

// Update modifies an existing candidate in the database
func (r *CandidateRepository) Update(candidate *models.PersistedCandidate) error {
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	skills, err := json.Marshal(candidate.Skills())
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	now := time.Now()
	candidate.SetUpdatedAt(now)

	query := `
		UPDATE candidates
		SET name = ?, email = ?, phone = ?, job_title = ?, skills = ?, experience_years = ?, source_file = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, candidate.Name(), candidate.Email(), candidate.Phone(),
		candidate.JobTitle(), string(skills), candidate.ExperienceYears(), candidate.SourceFile(),
		now, candidate.ID())
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("candidate not found or already deleted: %s", candidate.ID())
	}

	return nil
}

// Delete soft-deletes a candidate by ID
func (r *CandidateRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE candidates
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("candidate not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all candidates matching the given criteria, excluding soft-deleted candidates
func (r *CandidateRepository) List(criteria map[string]any) ([]*models.PersistedCandidate, error) {
	query := `
		SELECT id, sequence, remote_id, name, email, phone, job_title, skills, experience_years, source_file, created_at, updated_at, deleted_at
		FROM candidates
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if sourceFile, ok := criteria["source_file"].(string); ok && sourceFile != "" {
		query += " AND source_file = ?"
		args = append(args, sourceFile)
	}

	if jobTitle, ok := criteria["job_title"].(string); ok && jobTitle != "" {
		query += " AND job_title = ?"
		args = append(args, jobTitle)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.PersistedCandidate
	for rows.Next() {
		candidate, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return candidates, nil
}

// Upsert stores a freshly parsed candidate, replacing any cached row with the
// same remote ID.
func (r *CandidateRepository) Upsert(candidate *models.PersistedCandidate) error {
	existing, err := r.GetByRemoteID(candidate.RemoteID())
	if err != nil {
		return err
	}
	if existing == nil {
		return r.Create(candidate)
	}

	candidate.SetID(existing.ID())
	return r.Update(candidate)
}

type candidateRow struct {
	id              string
	sequence        int
	remoteID        string
	name            string
	email           string
	phone           string
	jobTitle        string
	skills          string
	experienceYears int
	sourceFile      string
	createdAt       time.Time
	updatedAt       time.Time
	deletedAt       sql.NullTime
}

func (row candidateRow) build() (*models.PersistedCandidate, error) {
	var skills []string
	if row.skills != "" {
		if err := json.Unmarshal([]byte(row.skills), &skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills: %w", err)
		}
	}

	candidate := models.NewPersistedCandidate(row.sequence, models.Candidate{
		RemoteID:        row.remoteID,
		Name:            row.name,
		Email:           row.email,
		Phone:           row.phone,
		JobTitle:        row.jobTitle,
		Skills:          skills,
		ExperienceYears: row.experienceYears,
	}, row.sourceFile)
	candidate.SetID(row.id)
	candidate.SetCreatedAt(row.createdAt)
	candidate.SetUpdatedAt(row.updatedAt)
	if row.deletedAt.Valid {
		candidate.SetDeletedAt(&row.deletedAt.Time)
	}

	return candidate, nil
}

func (r *CandidateRepository) scanOne(row *sql.Row) (*models.PersistedCandidate, error) {
	var c candidateRow

	err := row.Scan(&c.id, &c.sequence, &c.remoteID, &c.name, &c.email, &c.phone, &c.jobTitle,
		&c.skills, &c.experienceYears, &c.sourceFile, &c.createdAt, &c.updatedAt, &c.deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}

	return c.build()
}

func (r *CandidateRepository) scanRow(rows *sql.Rows) (*models.PersistedCandidate, error) {
	var c candidateRow

	if err := rows.Scan(&c.id, &c.sequence, &c.remoteID, &c.name, &c.email, &c.phone, &c.jobTitle,
		&c.skills, &c.experienceYears, &c.sourceFile, &c.createdAt, &c.updatedAt, &c.deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan candidate: %w", err)
	}

	return c.build()
}
