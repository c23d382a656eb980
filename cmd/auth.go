package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/repositories"
	"github.com/desertthunder/cvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin checks the supplied credentials against the configured operator
// account and records a live session. Any previous session is replaced.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", shared.ErrMissingCredentials)
	}

	if r.config.Auth.Username == "" {
		return fmt.Errorf("%w: no operator account configured; run 'cvx setup' first", shared.ErrMissingCredentials)
	}

	if username != r.config.Auth.Username || password != r.config.Auth.Password {
		return shared.ErrInvalidCredentials
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSessionRepository(db)
	session := models.NewSession(0, username, true)
	if err := repo.Create(session); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	r.logger.Info("operator logged in", "username", username)
	r.writePlain("✓ Logged in as %s\n", username)

	return nil
}

// AuthLogout ends the live session. A no-op when nobody is logged in.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSessionRepository(db)
	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthStatus reports the current session and the reachability of the parser
// backend. The health probe is informational; its failure does not change
// the exit status.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSessionRepository(db)
	session, err := repo.Current()
	if err != nil {
		return err
	}

	r.writePlainHeader("Auth Status")
	if session == nil {
		r.writePlain("Session:  not logged in\n")
	} else {
		r.writePlain("Session:  %s (since %s)\n", session.Username(), session.CreatedAt().Format(time.RFC822))
	}

	if healthErr := r.parser.Health(ctx); healthErr != nil {
		r.writePlain("Parser:   unreachable (%v)\n", healthErr)
	} else {
		r.writePlain("Parser:   ok\n")
	}

	return nil
}
