package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
)

// SessionRepository persists the operator's login session.
//
// At most one live session row exists at a time: Create soft-deletes any
// prior session before inserting, and Clear soft-deletes the current one on
// logout.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session, replacing any existing live session.
func (r *SessionRepository) Create(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	session.SetID(id)

	now := time.Now()
	if _, err := r.db.Exec("UPDATE sessions SET deleted_at = ? WHERE deleted_at IS NULL", now); err != nil {
		return fmt.Errorf("failed to replace previous session: %w", err)
	}

	query := `
		INSERT INTO sessions (id, sequence, username, authenticated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, session.Username(), session.Authenticated(), session.CreatedAt(), session.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `
		SELECT id, sequence, username, authenticated, created_at, updated_at, deleted_at
		FROM sessions
		WHERE id = ? AND deleted_at IS NULL
	`

	session, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return session, err
}

// Current retrieves the live session, or nil when no operator is logged in.
func (r *SessionRepository) Current() (*models.Session, error) {
	query := `
		SELECT id, sequence, username, authenticated, created_at, updated_at, deleted_at
		FROM sessions
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`

	session, err := r.scanOne(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return session, err
}

// Update modifies an existing session in the database
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	session.SetUpdatedAt(now)

	query := `
		UPDATE sessions
		SET username = ?, authenticated = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, session.Username(), session.Authenticated(), now, session.ID())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already deleted: %s", session.ID())
	}

	return nil
}

// Delete soft-deletes a session by ID
func (r *SessionRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE sessions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already deleted: %s", id)
	}

	return nil
}

// Clear soft-deletes the live session on logout. A no-op when nobody is
// logged in.
func (r *SessionRepository) Clear() error {
	now := time.Now()
	if _, err := r.db.Exec("UPDATE sessions SET deleted_at = ? WHERE deleted_at IS NULL", now); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// List retrieves all sessions matching the given criteria, excluding soft-deleted sessions
func (r *SessionRepository) List(criteria map[string]any) ([]*models.Session, error) {
	query := `
		SELECT id, sequence, username, authenticated, created_at, updated_at, deleted_at
		FROM sessions
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if username, ok := criteria["username"].(string); ok && username != "" {
		query += " AND username = ?"
		args = append(args, username)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) scanOne(row *sql.Row) (*models.Session, error) {
	var (
		id            string
		sequence      int
		username      string
		authenticated bool
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	err := row.Scan(&id, &sequence, &username, &authenticated, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session := models.NewSession(sequence, username, authenticated)
	session.SetID(id)
	session.SetCreatedAt(createdAt)
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}

	return session, nil
}

func (r *SessionRepository) scanRow(rows *sql.Rows) (*models.Session, error) {
	var (
		id            string
		sequence      int
		username      string
		authenticated bool
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	if err := rows.Scan(&id, &sequence, &username, &authenticated, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	session := models.NewSession(sequence, username, authenticated)
	session.SetID(id)
	session.SetCreatedAt(createdAt)
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}

	return session, nil
}
