package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/services"
	"github.com/desertthunder/cvx/internal/shared"
)

// SyncResult reports the outcome of a list sync operation.
type SyncResult struct {
	ListID    string // Target list identifier
	ListName  string // Target list display name
	Created   bool   // Whether this operation created the list
	Requested int    // Contacts the caller asked to attach
	Attached  int    // Contacts the backend reports as added
}

// Partial reports whether fewer contacts were attached than requested.
func (r *SyncResult) Partial() bool {
	return r.Attached < r.Requested
}

// ListSyncEngine performs the two-step create-or-resolve then attach
// workflow against the CRM. Operations are non-reentrant: a second call is
// rejected while one is in flight. No idempotency key is generated, so a
// retry after an ambiguous failure may create a duplicate list or
// double-attach contacts.
type ListSyncEngine struct {
	crm      services.CRM
	inFlight atomic.Bool
}

// NewListSyncEngine creates an engine over the given CRM service.
func NewListSyncEngine(crm services.CRM) *ListSyncEngine {
	return &ListSyncEngine{crm: crm}
}

// LoadLists retrieves the contact-list catalog (first page). A failure is
// classified but never blocks search or upload; the caller keeps an empty
// catalog.
func (e *ListSyncEngine) LoadLists(ctx context.Context) ([]models.ExternalList, error) {
	if e.crm == nil {
		return nil, fmt.Errorf("%w: CRM service not initialized", shared.ErrServiceUnavailable)
	}

	return e.crm.Lists(ctx, services.DefaultListPageSize)
}

// CreateAndAttach creates a new named list and attaches the selected
// contacts to it.
//
// Local rejections (blank name, case-insensitive collision with the
// catalog, empty selection) happen before any network call. A creation
// failure aborts with nothing changed remotely. An attachment failure after
// a successful create returns the partially applied result alongside an
// error wrapping [shared.ErrPartial]: the list exists remotely but holds no
// contacts.
func (e *ListSyncEngine) CreateAndAttach(ctx context.Context, progress chan<- ProgressUpdate, name string, contactIDs []string, catalog []models.ExternalList) (*SyncResult, error) {
	if e.crm == nil {
		return nil, fmt.Errorf("%w: CRM service not initialized", shared.ErrServiceUnavailable)
	}
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, shared.ErrSyncInFlight
	}
	defer e.inFlight.Store(false)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: list name is required", shared.ErrValidation)
	}
	for _, list := range catalog {
		if strings.EqualFold(list.Name, name) {
			return nil, fmt.Errorf("%w: a list named %q already exists", shared.ErrDuplicateName, list.Name)
		}
	}
	if len(contactIDs) == 0 {
		return nil, shared.ErrEmptySelection
	}

	sendProgress(progress, createListUpdate(1, 2, name))

	created, err := e.crm.CreateList(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create list %q: %w", name, err)
	}

	result := &SyncResult{
		ListID:    created.ID,
		ListName:  created.Name,
		Created:   true,
		Requested: len(contactIDs),
	}

	sendProgress(progress, attachContactsUpdate(2, 2, created.Name, len(contactIDs)))

	added, err := e.crm.AttachContacts(ctx, created.ID, contactIDs)
	if err != nil {
		return result, fmt.Errorf("%w: list %q was created but attaching contacts failed: %v", shared.ErrPartial, created.Name, err)
	}

	result.Attached = added
	return result, nil
}

// AttachToExisting attaches the selected contacts to an already existing
// list. Rejects locally when no list is chosen or the selection is empty.
func (e *ListSyncEngine) AttachToExisting(ctx context.Context, progress chan<- ProgressUpdate, list models.ExternalList, contactIDs []string) (*SyncResult, error) {
	if e.crm == nil {
		return nil, fmt.Errorf("%w: CRM service not initialized", shared.ErrServiceUnavailable)
	}
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, shared.ErrSyncInFlight
	}
	defer e.inFlight.Store(false)

	if strings.TrimSpace(list.ID) == "" {
		return nil, shared.ErrNoListChosen
	}
	if len(contactIDs) == 0 {
		return nil, shared.ErrEmptySelection
	}

	result := &SyncResult{
		ListID:    list.ID,
		ListName:  list.Name,
		Requested: len(contactIDs),
	}

	sendProgress(progress, attachContactsUpdate(1, 1, list.Name, len(contactIDs)))

	added, err := e.crm.AttachContacts(ctx, list.ID, contactIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to attach contacts to %q: %w", list.Name, err)
	}

	result.Attached = added
	return result, nil
}
