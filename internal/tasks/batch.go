package tasks

import (
	"github.com/desertthunder/cvx/internal/models"
)

// UploadStatus tracks one file's position in its upload lifecycle.
// Transitions are one-way: queued → uploading → succeeded|failed.
type UploadStatus int

const (
	StatusQueued UploadStatus = iota
	StatusUploading
	StatusSucceeded
	StatusFailed
)

func (s UploadStatus) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusUploading:
		return "uploading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

// Terminal reports whether the status is final.
func (s UploadStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// UploadItem is one file's upload/parse lifecycle record. Items are value
// types; the batch replaces whole items rather than mutating fields in
// place.
type UploadItem struct {
	ID        string
	Filename  string
	Path      string
	Size      int64
	Status    UploadStatus
	Progress  int
	Candidate *models.Candidate
	Err       string
}

// ItemUpdate is an identifier-scoped event emitted by an upload in flight.
type ItemUpdate struct {
	ID        string
	Status    UploadStatus
	Progress  int
	Candidate *models.Candidate
	Err       string
}

// Rejection records a file that validation refused; no UploadItem exists
// for it.
type Rejection struct {
	Filename string
	Reason   error
}

// Batch is the live, ordered collection of UploadItems for one submission.
// Updates are applied as functional replacements of the single matching
// item, so concurrent uploads reporting through a single consumer can never
// interleave destructively.
type Batch struct {
	items     []UploadItem
	dismissed map[string]bool
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{dismissed: make(map[string]bool)}
}

// Append adds an item in submission order.
func (b *Batch) Append(item UploadItem) {
	b.items = append(b.items, item)
}

// Len returns the number of live items.
func (b *Batch) Len() int {
	return len(b.items)
}

// Items returns a copy of the live collection in submission order.
func (b *Batch) Items() []UploadItem {
	out := make([]UploadItem, len(b.items))
	copy(out, b.items)
	return out
}

// Item returns the item with the given id, if present.
func (b *Batch) Item(id string) (UploadItem, bool) {
	for _, item := range b.items {
		if item.ID == id {
			return item, true
		}
	}
	return UploadItem{}, false
}

// Apply replaces the matching item with an updated copy. Returns false when
// the update is ignored: unknown or dismissed ids, transitions out of a
// terminal state, or progress moving backwards while uploading.
func (b *Batch) Apply(u ItemUpdate) bool {
	if b.dismissed[u.ID] {
		return false
	}

	for i, item := range b.items {
		if item.ID != u.ID {
			continue
		}

		if item.Status.Terminal() {
			return false
		}

		next := item
		switch u.Status {
		case StatusUploading:
			if u.Progress < item.Progress {
				return false
			}
			next.Status = StatusUploading
			next.Progress = u.Progress
		case StatusSucceeded:
			next.Status = StatusSucceeded
			next.Progress = 100
			next.Candidate = u.Candidate
		case StatusFailed:
			next.Status = StatusFailed
			next.Err = u.Err
		default:
			return false
		}

		b.items[i] = next
		return true
	}

	return false
}

// Remove dismisses an item. Terminal items are simply deleted; removing an
// in-flight item does not cancel its request but suppresses all of its
// later updates.
func (b *Batch) Remove(id string) bool {
	for i, item := range b.items {
		if item.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			b.dismissed[id] = true
			return true
		}
	}
	return false
}

// Settled reports whether every live item has reached a terminal state.
func (b *Batch) Settled() bool {
	for _, item := range b.items {
		if !item.Status.Terminal() {
			return false
		}
	}
	return true
}

// Counts returns how many live items have succeeded and failed.
func (b *Batch) Counts() (succeeded, failed int) {
	for _, item := range b.items {
		switch item.Status {
		case StatusSucceeded:
			succeeded++
		case StatusFailed:
			failed++
		}
	}
	return succeeded, failed
}
