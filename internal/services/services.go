// package services defines interfaces for interacting with HTTP APIs
//
// resume parser service, CRM contact lists
package services

import (
	"context"

	"github.com/desertthunder/cvx/internal/models"
)

// Parser defines the interface for the resume parsing service.
type Parser interface {
	// UploadResume submits one resume file for parsing. onProgress, when
	// non-nil, receives upload percentages in [0,100) as the payload is
	// streamed; the caller reports 100 once the parsed record arrives.
	UploadResume(ctx context.Context, path string, onProgress func(pct int)) (*models.Candidate, error)

	// Search runs a keyword search over parsed candidates.
	Search(ctx context.Context, terms []string, mode models.SearchMode) ([]models.SearchResult, error)

	// Health checks that the service is reachable.
	Health(ctx context.Context) error

	// Name returns the service name for diagnostics (e.g. "Parser")
	Name() string
}

// CRM defines the interface for the downstream CRM's contact lists.
type CRM interface {
	// Lists retrieves the contact list catalog, first page only, capped at
	// limit entries.
	Lists(ctx context.Context, limit int) ([]models.ExternalList, error)

	// CreateList creates a new named list and returns it with the
	// server-assigned identifier.
	CreateList(ctx context.Context, name string) (*models.ExternalList, error)

	// AttachContacts adds the given contact identifiers to a list and
	// returns the count the backend actually added, which may be fewer
	// than requested when some identifiers were invalid.
	AttachContacts(ctx context.Context, listID string, contactIDs []string) (int, error)

	// Name returns the service name for diagnostics (e.g. "CRM")
	Name() string
}
