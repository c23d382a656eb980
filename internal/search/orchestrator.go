package search

import (
	"github.com/desertthunder/cvx/internal/models"
	"github.com/desertthunder/cvx/internal/shared"
)

// State tracks the search request lifecycle.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return ""
	}
}

// Query is the snapshot a commit takes of the term set and match mode.
type Query struct {
	Terms []string
	Mode  models.SearchMode
}

// Orchestrator owns one search session: the request state machine, the
// last committed query, the current result collection, and the selection
// set. At most one outcome per token is authoritative; responses carrying
// a stale token are discarded so a superseded request can never clobber
// fresher results.
type Orchestrator struct {
	state     State
	token     uint64
	lastQuery Query
	results   []models.SearchResult
	selected  map[string]bool
	errMsg    string
}

// NewOrchestrator creates an idle session with no results.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{selected: make(map[string]bool)}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// LastQuery returns the most recently committed query snapshot.
func (o *Orchestrator) LastQuery() Query {
	return Query{Terms: append([]string(nil), o.lastQuery.Terms...), Mode: o.lastQuery.Mode}
}

// Err returns the classified message of the last failed search, if any.
func (o *Orchestrator) Err() string {
	return o.errMsg
}

// Begin commits a search. An empty term list is rejected with a validation
// error: no request token is issued and state is unchanged. Otherwise the
// orchestrator transitions to searching, clears the selection, snapshots
// the query, and returns the token the eventual outcome must present to
// [Orchestrator.Resolve].
func (o *Orchestrator) Begin(terms []string, mode models.SearchMode) (uint64, error) {
	if len(terms) == 0 {
		return 0, shared.ErrEmptyQuery
	}

	o.token++
	o.state = StateSearching
	o.lastQuery = Query{Terms: append([]string(nil), terms...), Mode: mode}
	o.selected = make(map[string]bool)
	o.errMsg = ""

	return o.token, nil
}

// Resolve applies a search outcome. Returns false, with no state change,
// when the token is stale (a newer commit superseded this request). On
// success the result collection is replaced wholesale; on failure it is
// cleared and the classified message recorded.
func (o *Orchestrator) Resolve(token uint64, results []models.SearchResult, err error) bool {
	if token != o.token || o.state != StateSearching {
		return false
	}

	if err != nil {
		o.state = StateFailed
		o.results = nil
		o.errMsg = err.Error()
		return true
	}

	o.state = StateCompleted
	o.results = append([]models.SearchResult(nil), results...)
	return true
}

// Results returns the current result collection.
func (o *Orchestrator) Results() []models.SearchResult {
	return append([]models.SearchResult(nil), o.results...)
}

// Toggle flips the selection membership of a contact identifier. Ids not
// present in the current result collection are ignored, so the selection
// can never grow beyond the displayed results.
func (o *Orchestrator) Toggle(id string) bool {
	if !o.hasResult(id) {
		return false
	}
	if o.selected[id] {
		delete(o.selected, id)
	} else {
		o.selected[id] = true
	}
	return true
}

// ToggleAll selects every current result, or clears the selection when
// everything is already selected.
func (o *Orchestrator) ToggleAll() {
	if len(o.results) == 0 {
		return
	}
	if len(o.selected) == len(o.results) {
		o.selected = make(map[string]bool)
		return
	}
	for _, result := range o.results {
		o.selected[result.ContactID] = true
	}
}

// IsSelected reports membership of an identifier in the selection set.
func (o *Orchestrator) IsSelected(id string) bool {
	return o.selected[id]
}

// SelectionCount returns the size of the selection set.
func (o *Orchestrator) SelectionCount() int {
	return len(o.selected)
}

// Selected returns the selected contact identifiers in result order.
func (o *Orchestrator) Selected() []string {
	var ids []string
	for _, result := range o.results {
		if o.selected[result.ContactID] {
			ids = append(ids, result.ContactID)
		}
	}
	return ids
}

// ClearSelection empties the selection set. Called after a successful sync.
func (o *Orchestrator) ClearSelection() {
	o.selected = make(map[string]bool)
}

func (o *Orchestrator) hasResult(id string) bool {
	for _, result := range o.results {
		if result.ContactID == id {
			return true
		}
	}
	return false
}
