package ui

import (
	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/tasks"
)

// uploadUpdateMsg carries one per-file upload event from the upload engine.
type uploadUpdateMsg tasks.ItemUpdate

// uploadDoneMsg signals that every file in the batch reached a terminal
// status.
type uploadDoneMsg struct {
	summary *tasks.BatchSummary
	err     error
}

// searchDoneMsg carries a search response tagged with the request token it
// answers. Update hands the token to the orchestrator, which discards the
// message when a newer search has been issued since.
type searchDoneMsg struct {
	token   uint64
	results []models.SearchResult
	err     error
}

// listsFetchedMsg carries the CRM list catalog for the picker view.
type listsFetchedMsg struct {
	lists []models.ExternalList
	err   error
}

// syncProgressMsg carries one progress event from the sync engine.
type syncProgressMsg tasks.ProgressUpdate

// syncDoneMsg signals sync completion. result may be non-nil alongside a
// non-nil err when the list was created but attachment failed.
type syncDoneMsg struct {
	result *tasks.SyncResult
	err    error
}
