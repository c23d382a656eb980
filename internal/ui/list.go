package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/cvx/internal/models"
)

var (
	_ list.Item = resultItem{}
	_ list.Item = crmListItem{}
)

// resultItem wraps [models.SearchResult] to implement [list.Item]. The
// selection marker is baked in when the item is built, so the result list is
// rebuilt after every toggle.
type resultItem struct {
	result   models.SearchResult
	selected bool
}

func (i resultItem) FilterValue() string { return i.result.Name }

func (i resultItem) Title() string {
	marker := "[ ]"
	if i.selected {
		marker = "[x]"
	}
	return fmt.Sprintf("%s %s", marker, models.Fallback(i.result.Name))
}

func (i resultItem) Description() string {
	desc := models.Fallback(i.result.JobTitle)
	if len(i.result.MatchedTerms) > 0 {
		desc = fmt.Sprintf("%s • matched: %s", desc, strings.Join(i.result.MatchedTerms, ", "))
	}
	return desc
}

// crmListItem wraps [models.ExternalList] to implement [list.Item].
type crmListItem struct {
	list models.ExternalList
}

func (i crmListItem) FilterValue() string { return i.list.Name }
func (i crmListItem) Title() string       { return i.list.Name }
func (i crmListItem) Description() string { return fmt.Sprintf("ID: %s", i.list.ID) }
