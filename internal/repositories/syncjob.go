package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
)

// SyncJobRepository records the outcome of every list sync so operators can
// audit which candidates were pushed where. Sync history is append-only.
type SyncJobRepository struct {
	db *sql.DB
}

// NewSyncJobRepository creates a new [SyncJobRepository] with the given database connection
func NewSyncJobRepository(db *sql.DB) *SyncJobRepository {
	return &SyncJobRepository{db: db}
}

// Create inserts a new sync job into the database with generated ID and sequence
func (r *SyncJobRepository) Create(job *models.SyncJob) error {
	sequence, err := NextSequence(r.db, "sync_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	job.SetID(id)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sync_jobs (id, sequence, mode, list_id, list_name, requested, attached, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, job.Mode(), job.ListID(), job.ListName(),
		job.Requested(), job.Attached(), job.Status(), job.ErrDetail(), job.CreatedAt(), job.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert sync job: %w", err)
	}

	return nil
}

// Get retrieves a sync job by ID, excluding soft-deleted jobs
func (r *SyncJobRepository) Get(id string) (*models.SyncJob, error) {
	query := `
		SELECT id, sequence, mode, list_id, list_name, requested, attached, status, error, created_at, updated_at, deleted_at
		FROM sync_jobs
		WHERE id = ? AND deleted_at IS NULL
	`

	job, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sync job not found: %s", id)
	}
	return job, err
}

// Latest retrieves the most recent sync job, or nil when no sync has run.
func (r *SyncJobRepository) Latest() (*models.SyncJob, error) {
	query := `
		SELECT id, sequence, mode, list_id, list_name, requested, attached, status, error, created_at, updated_at, deleted_at
		FROM sync_jobs
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`

	job, err := r.scanOne(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return job, err
}

// Delete soft-deletes a sync job by ID
func (r *SyncJobRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE sync_jobs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete sync job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("sync job not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all sync jobs matching the given criteria, excluding soft-deleted jobs
func (r *SyncJobRepository) List(criteria map[string]any) ([]*models.SyncJob, error) {
	query := `
		SELECT id, sequence, mode, list_id, list_name, requested, attached, status, error, created_at, updated_at, deleted_at
		FROM sync_jobs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if listID, ok := criteria["list_id"].(string); ok && listID != "" {
		query += " AND list_id = ?"
		args = append(args, listID)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.SyncJob
	for rows.Next() {
		job, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

func (r *SyncJobRepository) scanOne(row *sql.Row) (*models.SyncJob, error) {
	var (
		id        string
		sequence  int
		mode      string
		listID    string
		listName  string
		requested int
		attached  int
		status    string
		errDetail string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &mode, &listID, &listName, &requested, &attached, &status, &errDetail, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync job: %w", err)
	}

	job := models.NewSyncJob(sequence, mode, listID, listName, requested, attached, status, errDetail)
	job.SetID(id)
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		job.SetDeletedAt(&deletedAt.Time)
	}

	return job, nil
}

func (r *SyncJobRepository) scanRow(rows *sql.Rows) (*models.SyncJob, error) {
	var (
		id        string
		sequence  int
		mode      string
		listID    string
		listName  string
		requested int
		attached  int
		status    string
		errDetail string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := rows.Scan(&id, &sequence, &mode, &listID, &listName, &requested, &attached, &status, &errDetail, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan sync job: %w", err)
	}

	job := models.NewSyncJob(sequence, mode, listID, listName, requested, attached, status, errDetail)
	job.SetID(id)
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		job.SetDeletedAt(&deletedAt.Time)
	}

	return job, nil
}
