package models

import "strings"

// DisplayFallback substitutes for any field the backend omitted.
const DisplayFallback = "N/A"

// Candidate is a parsed resume record returned by the parser service.
// Every field is optional on the wire; use [Fallback] when rendering.
type Candidate struct {
	RemoteID        string   `json:"candidate_id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	JobTitle        string   `json:"job_title"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	RawText         string   `json:"raw_text"`
}

// SearchMode selects how multiple keywords combine in a search request.
type SearchMode string

const (
	// MatchAny returns candidates containing at least one submitted term.
	MatchAny SearchMode = "or"
	// MatchAll returns only candidates containing every submitted term.
	MatchAll SearchMode = "and"
)

// Valid reports whether the mode is one of the wire values.
func (m SearchMode) Valid() bool {
	return m == MatchAny || m == MatchAll
}

// SearchResult is a single candidate search hit. ContactID is stable and
// unique within a result set and keys both selection and CRM attachment.
type SearchResult struct {
	ContactID    string   `json:"contact_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	JobTitle     string   `json:"job_title"`
	Excerpt      string   `json:"excerpt"`
	MatchedTerms []string `json:"matched_keywords"`
}

// SelectionExport bundles a search result set with the query that produced
// it, for handing off to the formatter package.
type SelectionExport struct {
	Terms   []string       `json:"keywords"`
	Mode    string         `json:"mode"`
	Results []SearchResult `json:"results"`
}

// ExternalList is a named contact list in the downstream CRM.
type ExternalList struct {
	ID   string `json:"list_id"`
	Name string `json:"name"`
}

// Fallback returns s, or [DisplayFallback] when s is blank.
func Fallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return DisplayFallback
	}
	return s
}

// SkillsDisplay renders the candidate's skills as a comma-joined string with
// the usual fallback.
func (c Candidate) SkillsDisplay() string {
	if len(c.Skills) == 0 {
		return DisplayFallback
	}
	return strings.Join(c.Skills, ", ")
}
