package tasks

import (
	"testing"

	"github.com/desertthunder/cvx/internal/models"
)

func queuedBatch(ids ...string) *Batch {
	batch := NewBatch()
	for _, id := range ids {
		batch.Append(UploadItem{ID: id, Filename: id + ".pdf", Status: StatusQueued})
	}
	return batch
}

func TestBatch(t *testing.T) {
	t.Run("Apply", func(t *testing.T) {
		t.Run("moves a queued item to uploading", func(t *testing.T) {
			batch := queuedBatch("a")

			if !batch.Apply(ItemUpdate{ID: "a", Status: StatusUploading, Progress: 10}) {
				t.Fatal("expected update to apply")
			}

			item, _ := batch.Item("a")
			if item.Status != StatusUploading || item.Progress != 10 {
				t.Errorf("unexpected item state: %v %d", item.Status, item.Progress)
			}
		})

		t.Run("ignores unknown id", func(t *testing.T) {
			batch := queuedBatch("a")

			if batch.Apply(ItemUpdate{ID: "zzz", Status: StatusUploading}) {
				t.Error("expected update for unknown id to be ignored")
			}
		})

		t.Run("rejects backward progress", func(t *testing.T) {
			batch := queuedBatch("a")
			batch.Apply(ItemUpdate{ID: "a", Status: StatusUploading, Progress: 50})

			if batch.Apply(ItemUpdate{ID: "a", Status: StatusUploading, Progress: 30}) {
				t.Error("expected backward progress to be rejected")
			}

			item, _ := batch.Item("a")
			if item.Progress != 50 {
				t.Errorf("expected progress to remain 50, got %d", item.Progress)
			}
		})

		t.Run("success pins progress to 100 and stores the candidate", func(t *testing.T) {
			batch := queuedBatch("a")
			candidate := &models.Candidate{RemoteID: "cand_001", Name: "Jane Doe"}

			batch.Apply(ItemUpdate{ID: "a", Status: StatusUploading, Progress: 40})
			if !batch.Apply(ItemUpdate{ID: "a", Status: StatusSucceeded, Candidate: candidate}) {
				t.Fatal("expected terminal update to apply")
			}

			item, _ := batch.Item("a")
			if item.Progress != 100 {
				t.Errorf("expected progress 100, got %d", item.Progress)
			}
			if item.Candidate == nil || item.Candidate.RemoteID != "cand_001" {
				t.Error("expected candidate to be stored")
			}
		})

		t.Run("terminal items never transition again", func(t *testing.T) {
			batch := queuedBatch("a")
			batch.Apply(ItemUpdate{ID: "a", Status: StatusFailed, Err: "timed out"})

			if batch.Apply(ItemUpdate{ID: "a", Status: StatusUploading, Progress: 99}) {
				t.Error("expected update after failure to be ignored")
			}
			if batch.Apply(ItemUpdate{ID: "a", Status: StatusSucceeded}) {
				t.Error("expected success after failure to be ignored")
			}

			item, _ := batch.Item("a")
			if item.Status != StatusFailed || item.Err != "timed out" {
				t.Errorf("expected item to stay failed, got %v %q", item.Status, item.Err)
			}
		})

		t.Run("only the matching item changes", func(t *testing.T) {
			batch := queuedBatch("a", "b", "c")

			batch.Apply(ItemUpdate{ID: "b", Status: StatusUploading, Progress: 25})

			for _, id := range []string{"a", "c"} {
				item, _ := batch.Item(id)
				if item.Status != StatusQueued {
					t.Errorf("expected %s to remain queued, got %v", id, item.Status)
				}
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("suppresses later updates for a dismissed id", func(t *testing.T) {
			batch := queuedBatch("a", "b")

			if !batch.Remove("a") {
				t.Fatal("expected removal to succeed")
			}
			if batch.Len() != 1 {
				t.Errorf("expected one live item, got %d", batch.Len())
			}
			if batch.Apply(ItemUpdate{ID: "a", Status: StatusSucceeded}) {
				t.Error("expected update for dismissed id to be ignored")
			}
		})

		t.Run("unknown id returns false", func(t *testing.T) {
			batch := queuedBatch("a")
			if batch.Remove("zzz") {
				t.Error("expected removal of unknown id to fail")
			}
		})
	})

	t.Run("Settled", func(t *testing.T) {
		batch := queuedBatch("a", "b")

		if batch.Settled() {
			t.Error("queued batch should not be settled")
		}

		batch.Apply(ItemUpdate{ID: "a", Status: StatusSucceeded})
		if batch.Settled() {
			t.Error("batch with an in-flight item should not be settled")
		}

		batch.Apply(ItemUpdate{ID: "b", Status: StatusFailed, Err: "boom"})
		if !batch.Settled() {
			t.Error("batch with all terminal items should be settled")
		}

		succeeded, failed := batch.Counts()
		if succeeded != 1 || failed != 1 {
			t.Errorf("expected counts 1/1, got %d/%d", succeeded, failed)
		}
	})

	t.Run("empty batch is settled", func(t *testing.T) {
		if !NewBatch().Settled() {
			t.Error("empty batch should report settled")
		}
	})

	t.Run("Items returns a copy", func(t *testing.T) {
		batch := queuedBatch("a")

		items := batch.Items()
		items[0].Status = StatusFailed

		item, _ := batch.Item("a")
		if item.Status != StatusQueued {
			t.Error("mutating the returned slice should not affect the batch")
		}
	})
}

func TestUploadStatus(t *testing.T) {
	tc := []struct {
		status   UploadStatus
		text     string
		terminal bool
	}{
		{StatusQueued, "queued", false},
		{StatusUploading, "uploading", false},
		{StatusSucceeded, "succeeded", true},
		{StatusFailed, "failed", true},
	}

	for _, tt := range tc {
		t.Run(tt.text, func(t *testing.T) {
			if tt.status.String() != tt.text {
				t.Errorf("expected %q, got %q", tt.text, tt.status.String())
			}
			if tt.status.Terminal() != tt.terminal {
				t.Errorf("expected terminal=%v", tt.terminal)
			}
		})
	}
}
