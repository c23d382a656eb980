package main

import (
	"context"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/repositories"
	"github.com/urfave/cli/v3"
)

// CacheCandidates displays locally cached parsed candidates.
func (r *Runner) CacheCandidates(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewCandidateRepository(db)
	candidates, err := repo.List(map[string]any{})
	if err != nil {
		return err
	}

	if useJSON {
		dtos := make([]models.Candidate, len(candidates))
		for i, c := range candidates {
			dtos[i] = c.Candidate()
		}
		return r.writeJSON(dtos, true)
	}

	r.writePlainHeader("Cached Candidates")
	if len(candidates) == 0 {
		r.writePlain("No candidates cached. Run 'cvx upload' first.\n")
		return nil
	}

	for i, c := range candidates {
		r.writePlain("%d. %s - %s (%s)\n", i+1,
			models.Fallback(c.Name()), models.Fallback(c.Email()), models.Fallback(c.JobTitle()))
		r.writePlain("   from %s, cached %s\n", c.SourceFile(), c.CreatedAt().Format("2006-01-02"))
	}
	r.writePlain("\n%d candidates\n", len(candidates))

	return nil
}

// CacheLists displays the locally cached CRM list catalog.
func (r *Runner) CacheLists(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewListRepository(db)
	lists, err := repo.List(map[string]any{})
	if err != nil {
		return err
	}

	if useJSON {
		type listRow struct {
			ID        string    `json:"id"`
			Name      string    `json:"name"`
			FetchedAt time.Time `json:"fetched_at"`
		}
		rows := make([]listRow, len(lists))
		for i, l := range lists {
			rows[i] = listRow{ID: l.ListID(), Name: l.Name(), FetchedAt: l.FetchedAt()}
		}
		return r.writeJSON(rows, true)
	}

	r.writePlainHeader("Cached CRM Lists")
	if len(lists) == 0 {
		r.writePlain("No lists cached. Run 'cvx lists show' first.\n")
		return nil
	}

	for i, l := range lists {
		r.writePlain("%d. %s (%s) fetched %s\n", i+1, l.Name(), l.ListID(), l.FetchedAt().Format("2006-01-02 15:04"))
	}
	r.writePlain("\n%d lists\n", len(lists))

	return nil
}
