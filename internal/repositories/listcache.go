package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
)

// ListRepository caches the CRM list catalog so the list picker can render
// before the next fetch completes.
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new [ListRepository] with the given database connection
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

// Create inserts a new cached list into the database with generated ID and sequence
func (r *ListRepository) Create(list *models.PersistedList) error {
	sequence, err := NextSequence(r.db, "crm_lists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	list.SetID(id)

	if err := list.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO crm_lists (id, sequence, list_id, name, fetched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, list.ListID(), list.Name(), list.FetchedAt(), list.CreatedAt(), list.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}

	return nil
}

// Get retrieves a cached list by ID, excluding soft-deleted lists
func (r *ListRepository) Get(id string) (*models.PersistedList, error) {
	query := `
		SELECT id, sequence, list_id, name, fetched_at, created_at, updated_at, deleted_at
		FROM crm_lists
		WHERE id = ? AND deleted_at IS NULL
	`

	list, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list not found: %s", id)
	}
	return list, err
}

// GetByListID retrieves a cached list by its CRM identifier, or nil when the
// list hasn't been cached.
func (r *ListRepository) GetByListID(listID string) (*models.PersistedList, error) {
	query := `
		SELECT id, sequence, list_id, name, fetched_at, created_at, updated_at, deleted_at
		FROM crm_lists
		WHERE list_id = ? AND deleted_at IS NULL
	`

	list, err := r.scanOne(r.db.QueryRow(query, listID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return list, err
}

// Update modifies an existing cached list in the database
func (r *ListRepository) Update(list *models.PersistedList) error {
	if err := list.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	list.SetUpdatedAt(now)

	query := `
		UPDATE crm_lists
		SET name = ?, fetched_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, list.Name(), list.FetchedAt(), now, list.ID())
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("list not found or already deleted: %s", list.ID())
	}

	return nil
}

// Delete soft-deletes a cached list by ID
func (r *ListRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE crm_lists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("list not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cached lists matching the given criteria, excluding soft-deleted lists
func (r *ListRepository) List(criteria map[string]any) ([]*models.PersistedList, error) {
	query := `
		SELECT id, sequence, list_id, name, fetched_at, created_at, updated_at, deleted_at
		FROM crm_lists
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.PersistedList
	for rows.Next() {
		list, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lists, nil
}

// ReplaceCatalog drops the cached catalog and stores a freshly fetched page
// of lists, all stamped with the same fetch time.
func (r *ListRepository) ReplaceCatalog(lists []models.ExternalList, fetchedAt time.Time) error {
	now := time.Now()
	if _, err := r.db.Exec("UPDATE crm_lists SET deleted_at = ? WHERE deleted_at IS NULL", now); err != nil {
		return fmt.Errorf("failed to clear list cache: %w", err)
	}

	for _, list := range lists {
		cached := models.NewPersistedList(0, list, fetchedAt)
		if err := r.Create(cached); err != nil {
			return err
		}
	}

	return nil
}

func (r *ListRepository) scanOne(row *sql.Row) (*models.PersistedList, error) {
	var (
		id        string
		sequence  int
		listID    string
		name      string
		fetchedAt time.Time
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &listID, &name, &fetchedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query list: %w", err)
	}

	list := models.NewPersistedList(sequence, models.ExternalList{ID: listID, Name: name}, fetchedAt)
	list.SetID(id)
	list.SetCreatedAt(createdAt)
	list.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		list.SetDeletedAt(&deletedAt.Time)
	}

	return list, nil
}

func (r *ListRepository) scanRow(rows *sql.Rows) (*models.PersistedList, error) {
	var (
		id        string
		sequence  int
		listID    string
		name      string
		fetchedAt time.Time
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := rows.Scan(&id, &sequence, &listID, &name, &fetchedAt, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan list: %w", err)
	}

	list := models.NewPersistedList(sequence, models.ExternalList{ID: listID, Name: name}, fetchedAt)
	list.SetID(id)
	list.SetCreatedAt(createdAt)
	list.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		list.SetDeletedAt(&deletedAt.Time)
	}

	return list, nil
}
