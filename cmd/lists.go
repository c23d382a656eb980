package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/repositories"
	"github.com/desertthunder/cvx/internal/shared"
	"github.com/desertthunder/cvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ListsShow fetches and displays the CRM list catalog. Only the first page
// is retrieved; the cached copy is refreshed on every successful fetch.
func (r *Runner) ListsShow(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")

	r.logger.Info("fetching CRM list catalog", "limit", limit)

	lists, err := r.crm.Lists(ctx, int(limit))
	if err != nil {
		return err
	}

	if db, dbErr := r.openDatabase(); dbErr == nil {
		repo := repositories.NewListRepository(db)
		if cacheErr := repo.ReplaceCatalog(lists, time.Now()); cacheErr != nil {
			r.logger.Warn("failed to cache list catalog", "error", cacheErr)
		}
		db.Close()
	}

	if useJSON {
		return r.writeJSON(lists, true)
	}

	r.writePlainHeader("CRM Contact Lists")
	if len(lists) == 0 {
		r.writePlain("No lists found.\n")
		return nil
	}

	for i, list := range lists {
		r.writePlain("%d. %s (%s)\n", i+1, list.Name, list.ID)
	}
	r.writePlain("\n%d lists (first page)\n", len(lists))

	return nil
}

// ListsCreate creates a new named CRM contact list.
func (r *Runner) ListsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: list name is required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := r.requireSession(db); err != nil {
		return err
	}

	r.logger.Info("creating CRM list", "name", name)

	list, err := r.crm.CreateList(ctx, name)
	if err != nil {
		return err
	}

	r.writePlain("✓ List created: %s (%s)\n", list.Name, list.ID)
	return nil
}

// ListsSync attaches contacts to a CRM list. With --name a new list is
// created first; with --list-id an existing list is the target. The outcome
// is recorded in local sync history either way.
func (r *Runner) ListsSync(ctx context.Context, cmd *cli.Command) error {
	listID := cmd.String("list-id")
	name := cmd.String("name")
	contactIDs := cmd.StringSlice("contact")

	if listID == "" && name == "" {
		return fmt.Errorf("%w: either --list-id or --name is required", shared.ErrMissingArgument)
	}
	if listID != "" && name != "" {
		return fmt.Errorf("%w: cannot specify both --list-id and --name", shared.ErrInvalidArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := r.requireSession(db); err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("• %s\n", update.Message)
		}
	}()

	var result *tasks.SyncResult
	var syncErr error
	mode := models.SyncModeAttach

	if name != "" {
		mode = models.SyncModeCreate
		r.logger.Info("syncing to new list", "name", name, "contacts", len(contactIDs))

		catalog, catErr := r.syncer.LoadLists(ctx)
		if catErr != nil {
			close(progressCh)
			return catErr
		}

		result, syncErr = r.syncer.CreateAndAttach(ctx, progressCh, name, contactIDs, catalog)
	} else {
		r.logger.Info("syncing to existing list", "list_id", listID, "contacts", len(contactIDs))
		target := models.ExternalList{ID: listID, Name: listID}
		if cached, cacheErr := repositories.NewListRepository(db).GetByListID(listID); cacheErr == nil && cached != nil {
			target.Name = cached.Name()
		}
		result, syncErr = r.syncer.AttachToExisting(ctx, progressCh, target, contactIDs)
	}
	close(progressCh)

	r.recordSyncJob(db, mode, result, len(contactIDs), syncErr)

	if syncErr != nil {
		if errors.Is(syncErr, shared.ErrPartial) && result != nil {
			r.writePlain("\n⚠ List %q was created but attaching contacts failed.\n", result.ListName)
			r.writePlain("Re-run with --list-id %s to finish the sync.\n", result.ListID)
		}
		return syncErr
	}

	r.writePlainHeader("Sync Complete")
	r.writePlain("List: %s (%s)\n", result.ListName, result.ListID)
	r.writePlain("Attached: %d/%d\n", result.Attached, result.Requested)
	if result.Partial() {
		r.writePlain("\n⚠ %d contacts were not attached; they may already be on the list.\n", result.Requested-result.Attached)
	}

	return nil
}

// ListsHistory shows recorded sync operations, newest first.
func (r *Runner) ListsHistory(ctx context.Context, cmd *cli.Command) error {
	status := cmd.String("status")
	useJSON := cmd.Bool("json")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSyncJobRepository(db)

	criteria := map[string]any{}
	if status != "" {
		criteria["status"] = status
	}

	jobs, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if useJSON {
		type jobRow struct {
			Mode      string    `json:"mode"`
			ListID    string    `json:"list_id"`
			ListName  string    `json:"list_name"`
			Requested int       `json:"requested"`
			Attached  int       `json:"attached"`
			Status    string    `json:"status"`
			Error     string    `json:"error,omitempty"`
			At        time.Time `json:"at"`
		}
		rows := make([]jobRow, len(jobs))
		for i, job := range jobs {
			rows[i] = jobRow{
				Mode: job.Mode(), ListID: job.ListID(), ListName: job.ListName(),
				Requested: job.Requested(), Attached: job.Attached(),
				Status: job.Status(), Error: job.ErrDetail(), At: job.CreatedAt(),
			}
		}
		return r.writeJSON(rows, true)
	}

	r.writePlainHeader("Sync History")
	if len(jobs) == 0 {
		r.writePlain("No sync operations recorded.\n")
		return nil
	}

	for _, job := range jobs {
		r.writePlain("%s  %-9s %s (%d/%d attached)\n",
			job.CreatedAt().Format("2006-01-02 15:04"), job.Status(), job.ListName(), job.Attached(), job.Requested())
		if job.ErrDetail() != "" {
			r.writePlain("    %s\n", job.ErrDetail())
		}
	}

	return nil
}

// recordSyncJob appends the outcome of a sync to local history. History
// failures are logged, never fatal.
func (r *Runner) recordSyncJob(db *sql.DB, mode string, result *tasks.SyncResult, requested int, syncErr error) {
	var listID, listName string
	attached := 0
	if result != nil {
		listID = result.ListID
		listName = result.ListName
		attached = result.Attached
	}

	status := models.SyncStatusSucceeded
	errDetail := ""
	switch {
	case syncErr != nil:
		status = models.SyncStatusFailed
		if errors.Is(syncErr, shared.ErrPartial) {
			status = models.SyncStatusPartial
		}
		errDetail = syncErr.Error()
	case result != nil && result.Partial():
		status = models.SyncStatusPartial
	}

	job := models.NewSyncJob(0, mode, listID, listName, requested, attached, status, errDetail)
	if err := repositories.NewSyncJobRepository(db).Create(job); err != nil {
		r.logger.Warn("failed to record sync history", "error", err)
	}
}
