package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/repositories"
	"github.com/desertthunder/cvx/internal/shared"
	"github.com/desertthunder/cvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// UploadRun validates and uploads the given resume files, printing per-file
// progress as each upload advances independently.
func (r *Runner) UploadRun(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.StringArgs("files")
	useJSON := cmd.Bool("json")
	noCache := cmd.Bool("no-cache")

	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one file path is required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := r.requireSession(db); err != nil {
		return err
	}

	batch, rejections := r.uploader.PrepareBatch(paths)

	for _, rejection := range rejections {
		r.writePlain("✗ %s: %v\n", rejection.Filename, rejection.Reason)
	}

	if batch.Len() == 0 {
		return fmt.Errorf("%w: no files passed validation", shared.ErrValidation)
	}

	r.logger.Info("starting upload", "files", batch.Len(), "rejected", len(rejections))

	updates := make(chan tasks.ItemUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range updates {
			batch.Apply(update)
			item, ok := batch.Item(update.ID)
			if !ok {
				continue
			}
			switch item.Status {
			case tasks.StatusUploading:
				if item.Progress == 0 {
					r.writePlain("⇡ %s uploading...\n", item.Filename)
				}
			case tasks.StatusSucceeded:
				name := models.DisplayFallback
				if item.Candidate != nil {
					name = models.Fallback(item.Candidate.Name)
				}
				r.writePlain("✓ %s parsed as %s\n", item.Filename, name)
			case tasks.StatusFailed:
				r.writePlain("✗ %s failed: %s\n", item.Filename, item.Err)
			}
		}
	}()

	summary, err := r.uploader.Run(ctx, batch, updates)
	close(updates)
	<-done

	if err != nil {
		return err
	}

	if !noCache {
		r.cacheParsedCandidates(db, batch)
	}

	if useJSON {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("Upload Complete")
	r.writePlain("Files: %d\n", summary.Total)
	r.writePlain("Parsed: %d\n", summary.Succeeded)
	r.writePlain("Failed: %d\n", summary.Failed)
	if len(rejections) > 0 {
		r.writePlain("Rejected before upload: %d\n", len(rejections))
	}

	return nil
}

// cacheParsedCandidates stores successfully parsed candidates in the local
// cache. Cache failures are logged, never fatal.
func (r *Runner) cacheParsedCandidates(db *sql.DB, batch *tasks.Batch) {
	repo := repositories.NewCandidateRepository(db)

	for _, item := range batch.Items() {
		if item.Status != tasks.StatusSucceeded || item.Candidate == nil {
			continue
		}

		cached := models.NewPersistedCandidate(0, *item.Candidate, item.Filename)
		if err := repo.Upsert(cached); err != nil {
			r.logger.Warn("failed to cache candidate", "file", item.Filename, "error", err)
			continue
		}
		r.logger.Debug("cached candidate", "remote_id", item.Candidate.RemoteID)
	}
}
