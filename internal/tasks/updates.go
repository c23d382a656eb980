package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

// The zero Phase is deliberately unnamed so an unset ProgressUpdate renders
// as a generic in-progress state.
const (
	FetchLists Phase = iota + 1
	CreateList
	AttachContacts
)

func (p Phase) String() string {
	switch p {
	case FetchLists:
		return "fetch_lists"
	case CreateList:
		return "create_list"
	case AttachContacts:
		return "attach_contacts"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

func createListUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Creating list %q...", name),
	}
}

func attachContactsUpdate(step, total int, name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AttachContacts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Attaching %d contacts to %q...", count, name),
	}
}

