package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/search"
	"github.com/desertthunder/cvx/internal/services"
	"github.com/desertthunder/cvx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	UploadView ViewState = iota
	SearchView
	ResultsView
	ListPickerView
	NameEntryView
	SyncView
	SummaryView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	parser   services.Parser
	uploader *tasks.UploadEngine
	syncer   *tasks.ListSyncEngine

	width  int
	height int

	// upload
	files      []string
	batch      *tasks.Batch
	rejections []tasks.Rejection
	uploadChan chan tasks.ItemUpdate
	summary    *tasks.BatchSummary
	uploadErr  error

	// search
	terms      *search.TermSet
	mode       models.SearchMode
	orch       *search.Orchestrator
	input      textinput.Model
	resultList list.Model

	// sync
	catalog      []models.ExternalList
	listPicker   list.Model
	nameInput    textinput.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	syncResult   *tasks.SyncResult
	syncErr      error

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies. files may
// be empty, in which case the session opens on the search view.
func NewModel(ctx context.Context, parser services.Parser, uploader *tasks.UploadEngine, syncer *tasks.ListSyncEngine, files []string) *Model {
	input := textinput.New()
	input.Placeholder = "add keyword, enter on empty line to search"
	input.CharLimit = 64
	input.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = "new list name"
	nameInput.CharLimit = 128

	view := SearchView
	if len(files) > 0 {
		view = UploadView
	}

	return &Model{
		ctx:       ctx,
		view:      view,
		parser:    parser,
		uploader:  uploader,
		syncer:    syncer,
		files:     files,
		terms:     search.NewTermSet(),
		mode:      models.MatchAny,
		orch:      search.NewOrchestrator(),
		input:     input,
		nameInput: nameInput,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init validates the submitted files and starts the upload, or drops straight
// into the search view when no files were given.
func (m *Model) Init() tea.Cmd {
	if len(m.files) == 0 {
		return textinput.Blink
	}

	m.batch, m.rejections = m.uploader.PrepareBatch(m.files)
	if m.batch.Len() == 0 {
		m.view = SearchView
		return textinput.Blink
	}

	return m.startUpload()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.listPicker.Width() == 0 {
			m.listPicker.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case UploadView:
			return m.handleUploadKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case ListPickerView:
			return m.handleListPickerKeys(msg)
		case NameEntryView:
			return m.handleNameEntryKeys(msg)
		case SummaryView:
			return m.handleSummaryKeys(msg)
		}

	case uploadUpdateMsg:
		m.batch.Apply(tasks.ItemUpdate(msg))
		return m, m.waitForUpload()

	case uploadDoneMsg:
		m.summary = msg.summary
		m.uploadErr = msg.err
		return m, nil

	case searchDoneMsg:
		if !m.orch.Resolve(msg.token, msg.results, msg.err) {
			return m, nil
		}
		if m.orch.State() == search.StateFailed {
			m.view = SearchView
			return m, nil
		}
		m.rebuildResultList()
		m.view = ResultsView
		return m, nil

	case listsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultsView
			return m, nil
		}
		m.catalog = msg.lists
		items := make([]list.Item, len(msg.lists))
		for i, l := range msg.lists {
			items[i] = crmListItem{list: l}
		}
		m.listPicker = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.listPicker.Title = "CRM Contact Lists"
		m.listPicker.SetSize(m.width-4, m.height-8)
		m.view = ListPickerView
		return m, nil

	case syncProgressMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForSync()

	case syncDoneMsg:
		m.syncResult = msg.result
		m.syncErr = msg.err
		m.view = SummaryView
		if m.syncErr == nil {
			m.orch.ClearSelection()
		}
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case UploadView:
		return m.renderUpload()
	case SearchView:
		return m.renderSearch()
	case ResultsView:
		return m.renderResults()
	case ListPickerView:
		return m.renderListPicker()
	case NameEntryView:
		return m.renderNameEntry()
	case SyncView:
		return m.renderSync()
	case SummaryView:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if m.batch.Settled() {
			m.view = SearchView
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.mode == models.MatchAny {
			m.mode = models.MatchAll
		} else {
			m.mode = models.MatchAny
		}
		return m, nil
	case "esc":
		if m.orch.State() == search.StateCompleted {
			m.view = ResultsView
		}
		return m, nil
	case "backspace":
		if m.input.Value() == "" {
			m.terms.RemoveLast()
			return m, nil
		}
	case "enter":
		if value := strings.TrimSpace(m.input.Value()); value != "" {
			m.terms.Add(value)
			m.input.SetValue("")
			return m, nil
		}
		return m, m.runSearch()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			m.orch.Toggle(item.result.ContactID)
			m.rebuildResultList()
		}
		return m, nil
	case "a":
		m.orch.ToggleAll()
		m.rebuildResultList()
		return m, nil
	case "/":
		m.view = SearchView
		return m, textinput.Blink
	case "s", "enter":
		if m.orch.SelectionCount() == 0 {
			m.err = fmt.Errorf("no candidates selected")
			return m, nil
		}
		m.err = nil
		m.progress = tasks.ProgressUpdate{Phase: tasks.FetchLists, Message: "Contacting CRM"}
		m.view = SyncView
		return m, m.fetchLists()
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleListPickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ResultsView
		return m, nil
	case "n":
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		m.view = NameEntryView
		return m, textinput.Blink
	case "enter":
		if item, ok := m.listPicker.SelectedItem().(crmListItem); ok {
			m.view = SyncView
			return m, m.startAttach(item.list)
		}
	}

	var cmd tea.Cmd
	m.listPicker, cmd = m.listPicker.Update(msg)
	return m, cmd
}

func (m *Model) handleNameEntryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ListPickerView
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.view = SyncView
		return m, m.startCreate(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = SearchView
		m.syncResult = nil
		m.syncErr = nil
		m.err = nil
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.input, cmd = m.input.Update(msg)
	case NameEntryView:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case ResultsView:
		m.resultList, cmd = m.resultList.Update(msg)
	case ListPickerView:
		m.listPicker, cmd = m.listPicker.Update(msg)
	}
	return m, cmd
}

func (m *Model) rebuildResultList() {
	results := m.orch.Results()
	items := make([]list.Item, len(results))
	for i, result := range results {
		items[i] = resultItem{result: result, selected: m.orch.IsSelected(result.ContactID)}
	}

	index := m.resultList.Index()
	m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.resultList.Title = fmt.Sprintf("Results for '%s'", strings.Join(m.orch.LastQuery().Terms, ", "))
	m.resultList.SetSize(m.width-4, m.height-8)
	if index < len(items) {
		m.resultList.Select(index)
	}
}

func (m *Model) startUpload() tea.Cmd {
	m.uploadChan = make(chan tasks.ItemUpdate, 64)

	go func() {
		summary, err := m.uploader.Run(m.ctx, m.batch, m.uploadChan)
		m.summary = summary
		m.uploadErr = err
		close(m.uploadChan)
	}()

	return m.waitForUpload()
}

func (m *Model) waitForUpload() tea.Cmd {
	return func() tea.Msg {
		if m.uploadChan == nil {
			return uploadDoneMsg{summary: m.summary, err: m.uploadErr}
		}

		update, ok := <-m.uploadChan
		if !ok {
			m.uploadChan = nil
			return uploadDoneMsg{summary: m.summary, err: m.uploadErr}
		}
		return uploadUpdateMsg(update)
	}
}

func (m *Model) runSearch() tea.Cmd {
	token, err := m.orch.Begin(m.terms.Terms(), m.mode)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil

	query := m.orch.LastQuery()
	return func() tea.Msg {
		results, err := m.parser.Search(m.ctx, query.Terms, query.Mode)
		return searchDoneMsg{token: token, results: results, err: err}
	}
}

func (m *Model) fetchLists() tea.Cmd {
	return func() tea.Msg {
		lists, err := m.syncer.LoadLists(m.ctx)
		return listsFetchedMsg{lists: lists, err: err}
	}
}

func (m *Model) startAttach(target models.ExternalList) tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	ids := m.orch.Selected()

	go func() {
		result, err := m.syncer.AttachToExisting(m.ctx, m.progressChan, target, ids)
		m.syncResult = result
		m.syncErr = err
		close(m.progressChan)
	}()

	return m.waitForSync()
}

func (m *Model) startCreate(name string) tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	ids := m.orch.Selected()
	catalog := m.catalog

	go func() {
		result, err := m.syncer.CreateAndAttach(m.ctx, m.progressChan, name, ids, catalog)
		m.syncResult = result
		m.syncErr = err
		close(m.progressChan)
	}()

	return m.waitForSync()
}

func (m *Model) waitForSync() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return syncDoneMsg{result: m.syncResult, err: m.syncErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			return syncDoneMsg{result: m.syncResult, err: m.syncErr}
		}
		return syncProgressMsg(update)
	}
}

func (m *Model) renderUpload() string {
	title := styles.title.Render("Uploading Resumes")

	var rows []string
	for _, item := range m.batch.Items() {
		var status string
		switch item.Status {
		case tasks.StatusQueued:
			status = styles.help.Render("queued")
		case tasks.StatusUploading:
			status = fmt.Sprintf("%s %d%%", progressBar(item.Progress), item.Progress)
		case tasks.StatusSucceeded:
			name := models.DisplayFallback
			if item.Candidate != nil {
				name = models.Fallback(item.Candidate.Name)
			}
			status = styles.ok.Render(fmt.Sprintf("✓ %s", name))
		case tasks.StatusFailed:
			status = styles.err.Render(fmt.Sprintf("✗ %s", item.Err))
		}
		rows = append(rows, fmt.Sprintf("  %-30s %s", item.Filename, status))
	}

	for _, rejection := range m.rejections {
		rows = append(rows, fmt.Sprintf("  %-30s %s", rejection.Filename, styles.warn.Render(rejection.Reason.Error())))
	}

	footer := styles.help.Render("uploading...")
	if m.batch.Settled() {
		succeeded, failed := m.batch.Counts()
		footer = fmt.Sprintf("%s\n\n%s",
			fmt.Sprintf("%d parsed, %d failed", succeeded, failed),
			styles.help.Render("enter to continue • q to quit"))
	}

	return fmt.Sprintf("%s\n%s\n\n%s", title, strings.Join(rows, "\n"), footer)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Candidate Search")

	var chips []string
	for _, term := range m.terms.Terms() {
		chips = append(chips, styles.chip.Render(term))
	}
	termLine := styles.help.Render("no keywords yet")
	if len(chips) > 0 {
		termLine = strings.Join(chips, " ")
	}

	modeLabel := "match any"
	if m.mode == models.MatchAll {
		modeLabel = "match all"
	}

	status := ""
	if m.orch.State() == search.StateSearching {
		status = styles.warn.Render("searching...")
	} else if m.orch.State() == search.StateFailed {
		status = styles.err.Render(m.orch.Err())
	}
	if m.err != nil {
		status = styles.err.Render(m.err.Error())
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.mode, m.keys.back, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n\nMode: %s\n\n%s\n\n%s\n%s",
		title, termLine, modeLabel, m.input.View(), status, helpView)
}

func (m *Model) renderResults() string {
	count := fmt.Sprintf("%d selected", m.orch.SelectionCount())
	status := ""
	if m.err != nil {
		status = styles.err.Render(m.err.Error())
	}

	excerpt := ""
	if item, ok := m.resultList.SelectedItem().(resultItem); ok && item.result.Excerpt != "" {
		excerpt = "\n" + search.Highlight(item.result.Excerpt, m.orch.LastQuery().Terms, func(s string) string { return styles.match.Render(s) })
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.toggle, m.keys.all, m.keys.sync, m.keys.search, m.keys.quit})
	return fmt.Sprintf("%s%s\n\n%s %s\n%s", m.resultList.View(), excerpt, styles.ok.Render(count), status, helpView)
}

func (m *Model) renderListPicker() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.create, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.listPicker.View(), helpView)
}

func (m *Model) renderNameEntry() string {
	title := styles.title.Render("Name the New List")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.nameInput.View(), helpView)
}

func (m *Model) renderSync() string {
	title := styles.title.Render("Syncing Selection")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchLists:
		phase = "Fetching contact lists..."
	case tasks.CreateList:
		phase = "Creating list..."
	case tasks.AttachContacts:
		phase = fmt.Sprintf("Attaching contacts (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderSummary() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	if m.syncErr != nil {
		detail := ""
		if m.syncResult != nil && m.syncResult.Created {
			detail = fmt.Sprintf("\nList %q was created; re-run the sync against it to finish.", m.syncResult.ListName)
		}
		return fmt.Sprintf("%s%s\n\n%s", styles.err.Render(fmt.Sprintf("Sync failed: %v", m.syncErr)), detail, helpView)
	}

	if m.syncResult == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("No result available"), helpView)
	}

	title := styles.ok.Render("✓ Sync Complete")
	info := fmt.Sprintf("\nList: %s\nAttached: %d/%d", m.syncResult.ListName, m.syncResult.Attached, m.syncResult.Requested)

	var partial string
	if m.syncResult.Partial() {
		partial = fmt.Sprintf("\n\n%s", styles.warn.Render(
			fmt.Sprintf("%d contacts were not attached; they may already be on the list.", m.syncResult.Requested-m.syncResult.Attached)))
	}

	return fmt.Sprintf("%s%s%s\n\n%s", title, info, partial, helpView)
}

func progressBar(pct int) string {
	const width = 20
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s]", strings.Repeat("#", filled), strings.Repeat(".", width-filled))
}
