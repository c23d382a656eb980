package models

import (
	"testing"
)

func TestFallback(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{"non-blank passes through", "Jane Doe", "Jane Doe"},
		{"empty string", "", DisplayFallback},
		{"whitespace only", "   ", DisplayFallback},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fallback(tt.input); got != tt.want {
				t.Errorf("Fallback(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSkillsDisplay(t *testing.T) {
	t.Run("joins skills", func(t *testing.T) {
		c := Candidate{Skills: []string{"Go", "SQL"}}
		if got := c.SkillsDisplay(); got != "Go, SQL" {
			t.Errorf("SkillsDisplay() = %q", got)
		}
	})

	t.Run("empty skills falls back", func(t *testing.T) {
		c := Candidate{}
		if got := c.SkillsDisplay(); got != DisplayFallback {
			t.Errorf("SkillsDisplay() = %q", got)
		}
	})
}

func TestPersistedCandidate(t *testing.T) {
	t.Run("round-trips the DTO", func(t *testing.T) {
		src := Candidate{
			RemoteID: "cand_001",
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			JobTitle: "Backend Engineer",
			Skills:   []string{"Go", "SQL"},
		}

		persisted := NewPersistedCandidate(1, src, "jane_doe.pdf")
		got := persisted.Candidate()

		if got.RemoteID != src.RemoteID || got.Name != src.Name || len(got.Skills) != 2 {
			t.Errorf("round-trip mismatch: %+v", got)
		}
		if persisted.SourceFile() != "jane_doe.pdf" {
			t.Errorf("unexpected source file: %s", persisted.SourceFile())
		}
	})

	t.Run("skills are copied, not aliased", func(t *testing.T) {
		skills := []string{"Go"}
		persisted := NewPersistedCandidate(1, Candidate{RemoteID: "cand_001", Skills: skills}, "f.pdf")

		skills[0] = "mutated"
		if persisted.Skills()[0] != "Go" {
			t.Error("expected skills to be isolated from the source slice")
		}
	})

	t.Run("validation requires a remote ID", func(t *testing.T) {
		persisted := NewPersistedCandidate(1, Candidate{}, "f.pdf")
		if err := persisted.Validate(); err == nil {
			t.Error("expected validation error for blank remote ID")
		}
	})
}

func TestSyncJobValidate(t *testing.T) {
	tc := []struct {
		name    string
		mode    string
		status  string
		wantErr bool
	}{
		{"create succeeded", SyncModeCreate, SyncStatusSucceeded, false},
		{"attach partial", SyncModeAttach, SyncStatusPartial, false},
		{"attach failed", SyncModeAttach, SyncStatusFailed, false},
		{"invalid mode", "merge", SyncStatusSucceeded, true},
		{"invalid status", SyncModeCreate, "pending", true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			job := NewSyncJob(1, tt.mode, "list_1", "Backend Hires", 3, 3, tt.status, "")
			err := job.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestSearchMode(t *testing.T) {
	if !MatchAny.Valid() || !MatchAll.Valid() {
		t.Error("expected wire modes to be valid")
	}
	if SearchMode("xor").Valid() {
		t.Error("expected unknown mode to be invalid")
	}
}

func TestSession(t *testing.T) {
	t.Run("validation requires a username", func(t *testing.T) {
		if err := NewSession(1, "  ", true).Validate(); err == nil {
			t.Error("expected validation error for blank username")
		}
		if err := NewSession(1, "operator", true).Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}
