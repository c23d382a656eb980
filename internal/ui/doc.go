// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for resume ingestion and candidate sync:
//  1. [UploadView] : Monitor per-file resume upload progress
//  2. [SearchView] : Build a keyword set and run candidate searches
//  3. [ResultsView] : Browse results and toggle selections
//  4. [ListPickerView] : Choose an existing CRM list as the sync target
//  5. [NameEntryView] : Name a new CRM list
//  6. [SyncView] : Monitor sync progress
//  7. [SummaryView] : Display the sync outcome, including partial failures
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Upload and sync progress flow through channels from the tasks engines, providing
// non-blocking status reporting. Search responses carry the request token issued by
// [search.Orchestrator.Begin], so replies to superseded searches are discarded on
// arrival.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, space, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
