package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
	tu "github.com/desertthunder/cvx/internal/testing"
)

func TestListSyncEngine(t *testing.T) {
	contacts := []string{"cand_001", "cand_002", "cand_003"}
	catalog := []models.ExternalList{
		{ID: "list_1", Name: "Backend Hires"},
		{ID: "list_2", Name: "Q3 Pipeline"},
	}

	t.Run("CreateAndAttach", func(t *testing.T) {
		t.Run("creates the list then attaches", func(t *testing.T) {
			var createdName, attachedTo string
			crm := &tu.MockCRM{
				CreateListFunc: func(ctx context.Context, name string) (*models.ExternalList, error) {
					createdName = name
					return &models.ExternalList{ID: "list_new", Name: name}, nil
				},
				AttachFunc: func(ctx context.Context, listID string, contactIDs []string) (int, error) {
					attachedTo = listID
					return len(contactIDs), nil
				},
			}
			engine := NewListSyncEngine(crm)

			result, err := engine.CreateAndAttach(context.Background(), nil, "Frontend Hires", contacts, catalog)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if createdName != "Frontend Hires" || attachedTo != "list_new" {
				t.Errorf("unexpected call order: created %q, attached to %q", createdName, attachedTo)
			}
			if !result.Created || result.Attached != 3 || result.Partial() {
				t.Errorf("unexpected result: %+v", result)
			}
		})

		t.Run("rejects a duplicate name case-insensitively", func(t *testing.T) {
			engine := NewListSyncEngine(&tu.MockCRM{})

			_, err := engine.CreateAndAttach(context.Background(), nil, "backend hires", contacts, catalog)
			if !errors.Is(err, shared.ErrDuplicateName) {
				t.Fatalf("expected duplicate name error, got %v", err)
			}
		})

		t.Run("rejects a blank name", func(t *testing.T) {
			engine := NewListSyncEngine(&tu.MockCRM{})

			_, err := engine.CreateAndAttach(context.Background(), nil, "   ", contacts, catalog)
			if !errors.Is(err, shared.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})

		t.Run("rejects an empty selection before any network call", func(t *testing.T) {
			called := false
			crm := &tu.MockCRM{
				CreateListFunc: func(ctx context.Context, name string) (*models.ExternalList, error) {
					called = true
					return &models.ExternalList{ID: "list_new", Name: name}, nil
				},
			}
			engine := NewListSyncEngine(crm)

			_, err := engine.CreateAndAttach(context.Background(), nil, "New List", nil, catalog)
			if !errors.Is(err, shared.ErrEmptySelection) {
				t.Fatalf("expected empty selection error, got %v", err)
			}
			if called {
				t.Error("local rejection must not reach the CRM")
			}
		})

		t.Run("creation failure aborts with nothing attached", func(t *testing.T) {
			crm := &tu.MockCRM{
				CreateListFunc: func(ctx context.Context, name string) (*models.ExternalList, error) {
					return nil, fmt.Errorf("%w: 500", shared.ErrServerRejected)
				},
			}
			engine := NewListSyncEngine(crm)

			result, err := engine.CreateAndAttach(context.Background(), nil, "New List", contacts, catalog)
			if err == nil {
				t.Fatal("expected error")
			}
			if result != nil {
				t.Errorf("expected nil result when creation fails, got %+v", result)
			}
		})

		t.Run("attach failure after creation reports partial success", func(t *testing.T) {
			crm := &tu.MockCRM{
				AttachFunc: func(ctx context.Context, listID string, contactIDs []string) (int, error) {
					return 0, fmt.Errorf("%w: 503", shared.ErrServerRejected)
				},
			}
			engine := NewListSyncEngine(crm)

			result, err := engine.CreateAndAttach(context.Background(), nil, "New List", contacts, catalog)
			if !errors.Is(err, shared.ErrPartial) {
				t.Fatalf("expected partial error, got %v", err)
			}
			if result == nil || !result.Created || result.Attached != 0 {
				t.Errorf("expected created-but-empty result, got %+v", result)
			}
		})

		t.Run("streams progress updates", func(t *testing.T) {
			engine := NewListSyncEngine(&tu.MockCRM{})
			progress := make(chan ProgressUpdate, 10)

			_, err := engine.CreateAndAttach(context.Background(), progress, "New List", contacts, catalog)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			close(progress)

			var phases []Phase
			for update := range progress {
				phases = append(phases, update.Phase)
			}
			if len(phases) != 2 || phases[0] != CreateList || phases[1] != AttachContacts {
				t.Errorf("unexpected phases: %v", phases)
			}
		})
	})

	t.Run("AttachToExisting", func(t *testing.T) {
		target := models.ExternalList{ID: "list_1", Name: "Backend Hires"}

		t.Run("attaches and reports the backend count", func(t *testing.T) {
			crm := &tu.MockCRM{
				AttachFunc: func(ctx context.Context, listID string, contactIDs []string) (int, error) {
					// the backend skipped one duplicate
					return len(contactIDs) - 1, nil
				},
			}
			engine := NewListSyncEngine(crm)

			result, err := engine.AttachToExisting(context.Background(), nil, target, contacts)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Created {
				t.Error("attaching to an existing list must not report created")
			}
			if result.Attached != 2 || !result.Partial() {
				t.Errorf("expected partial result 2/3, got %+v", result)
			}
		})

		t.Run("rejects a missing list id", func(t *testing.T) {
			engine := NewListSyncEngine(&tu.MockCRM{})

			_, err := engine.AttachToExisting(context.Background(), nil, models.ExternalList{}, contacts)
			if !errors.Is(err, shared.ErrNoListChosen) {
				t.Fatalf("expected no list chosen error, got %v", err)
			}
		})

		t.Run("rejects an empty selection", func(t *testing.T) {
			engine := NewListSyncEngine(&tu.MockCRM{})

			_, err := engine.AttachToExisting(context.Background(), nil, target, nil)
			if !errors.Is(err, shared.ErrEmptySelection) {
				t.Fatalf("expected empty selection error, got %v", err)
			}
		})

		t.Run("attach failure is not partial", func(t *testing.T) {
			crm := &tu.MockCRM{
				AttachFunc: func(ctx context.Context, listID string, contactIDs []string) (int, error) {
					return 0, fmt.Errorf("%w: 500", shared.ErrServerRejected)
				},
			}
			engine := NewListSyncEngine(crm)

			result, err := engine.AttachToExisting(context.Background(), nil, target, contacts)
			if err == nil || errors.Is(err, shared.ErrPartial) {
				t.Fatalf("expected a plain failure, got %v", err)
			}
			if result != nil {
				t.Errorf("expected nil result, got %+v", result)
			}
		})
	})

	t.Run("rejects a second operation while one is in flight", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		crm := &tu.MockCRM{
			CreateListFunc: func(ctx context.Context, name string) (*models.ExternalList, error) {
				close(entered)
				<-release
				return &models.ExternalList{ID: "list_new", Name: name}, nil
			},
		}
		engine := NewListSyncEngine(crm)

		done := make(chan error, 1)
		go func() {
			_, err := engine.CreateAndAttach(context.Background(), nil, "Slow List", contacts, catalog)
			done <- err
		}()

		<-entered
		_, err := engine.AttachToExisting(context.Background(), nil, models.ExternalList{ID: "list_1", Name: "Backend Hires"}, contacts)
		if !errors.Is(err, shared.ErrSyncInFlight) {
			t.Fatalf("expected in-flight rejection, got %v", err)
		}

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("first operation should succeed, got %v", err)
		}

		// the gate releases once the first operation settles
		if _, err := engine.AttachToExisting(context.Background(), nil, models.ExternalList{ID: "list_1", Name: "Backend Hires"}, contacts); err != nil {
			t.Fatalf("expected gate to release, got %v", err)
		}
	})

	t.Run("LoadLists", func(t *testing.T) {
		t.Run("returns the catalog", func(t *testing.T) {
			crm := &tu.MockCRM{
				ListsFunc: func(ctx context.Context, limit int) ([]models.ExternalList, error) {
					return catalog, nil
				},
			}
			engine := NewListSyncEngine(crm)

			lists, err := engine.LoadLists(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(lists) != 2 {
				t.Errorf("expected 2 lists, got %d", len(lists))
			}
		})

		t.Run("nil CRM is rejected", func(t *testing.T) {
			engine := NewListSyncEngine(nil)

			if _, err := engine.LoadLists(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Fatalf("expected service unavailable, got %v", err)
			}
		})
	})
}
