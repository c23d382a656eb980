package repositories

import (
	"testing"
	"time"

	"github.com/desertthunder/cvx/internal/models"
)

func TestSessionRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSessionRepository(db)
			session := models.NewSession(0, "", true)

			if err := repo.Create(session); err == nil {
				t.Fatal("expected validation error for empty username")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSessionRepository(db)

			if _, err := repo.Get("nonexistent-id"); err == nil {
				t.Fatal("expected error when getting nonexistent session")
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSessionRepository(db)
			session := models.NewSession(0, "recruiter", true)
			session.SetID("nonexistent-id")

			if err := repo.Update(session); err == nil {
				t.Fatal("expected error when updating nonexistent session")
			}
		})
	})
}

func TestCandidateRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewCandidateRepository(db)
			candidate := models.NewPersistedCandidate(0, models.Candidate{Name: "No Remote ID"}, "file.pdf")

			if err := repo.Create(candidate); err == nil {
				t.Fatal("expected validation error for empty remote ID")
			}
		})

		t.Run("DuplicateRemoteID", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewCandidateRepository(db)

			if err := repo.Create(testCandidate("cand_001", "Jane Doe")); err != nil {
				t.Fatalf("failed to create first candidate: %v", err)
			}

			if err := repo.Create(testCandidate("cand_001", "Jane Doe Again")); err == nil {
				t.Fatal("expected error when creating candidate with duplicate remote ID")
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("Deleted", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewCandidateRepository(db)
			candidate := testCandidate("cand_001", "Jane Doe")

			if err := repo.Create(candidate); err != nil {
				t.Fatalf("failed to create candidate: %v", err)
			}

			if err := repo.Delete(candidate.ID()); err != nil {
				t.Fatalf("failed to delete candidate: %v", err)
			}

			if err := repo.Update(candidate); err == nil {
				t.Fatal("expected error when updating deleted candidate")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewCandidateRepository(db)

			if err := repo.Delete("nonexistent-id"); err == nil {
				t.Fatal("expected error when deleting nonexistent candidate")
			}
		})
	})
}

func TestListRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewListRepository(db)
			list := models.NewPersistedList(0, models.ExternalList{ID: "list_1"}, time.Now())

			if err := repo.Create(list); err == nil {
				t.Fatal("expected validation error for empty list name")
			}
		})

		t.Run("DuplicateListID", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewListRepository(db)

			first := models.NewPersistedList(0, models.ExternalList{ID: "list_1", Name: "Q3 Backend"}, time.Now())
			if err := repo.Create(first); err != nil {
				t.Fatalf("failed to create first list: %v", err)
			}

			second := models.NewPersistedList(0, models.ExternalList{ID: "list_1", Name: "Duplicate"}, time.Now())
			if err := repo.Create(second); err == nil {
				t.Fatal("expected error when caching list with duplicate CRM ID")
			}
		})
	})
}

func TestSyncJobRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("InvalidMode", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSyncJobRepository(db)
			job := models.NewSyncJob(0, "merge", "list_1", "Q3 Backend", 3, 3, models.SyncStatusSucceeded, "")

			if err := repo.Create(job); err == nil {
				t.Fatal("expected validation error for invalid mode")
			}
		})

		t.Run("InvalidStatus", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSyncJobRepository(db)
			job := models.NewSyncJob(0, models.SyncModeCreate, "list_1", "Q3 Backend", 3, 3, "pending", "")

			if err := repo.Create(job); err == nil {
				t.Fatal("expected validation error for invalid status")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSyncJobRepository(db)

			if _, err := repo.Get("nonexistent-id"); err == nil {
				t.Fatal("expected error when getting nonexistent sync job")
			}
		})
	})
}
