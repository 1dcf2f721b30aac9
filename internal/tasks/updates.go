package tasks

import (
	"fmt"

	"movitv/internal/models"
)

// ProgressUpdate represents a progress event during a refresh.
//
// Used to send real-time updates to the CLI or TUI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchBookmarks Phase = iota
	Enrich
	Done
)

func (p Phase) String() string {
	switch p {
	case FetchBookmarks:
		return "fetch_bookmarks"
	case Enrich:
		return "enrich"
	case Done:
		return "done"
	default:
		return ""
	}
}

func fetchBookmarksUpdate(mediaType models.MediaType, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchBookmarks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s bookmarks...", lowerLabel(mediaType)),
	}
}

func enrichedUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Enrich,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, title),
	}
}

func readyUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    count,
		Total:   count,
		Message: fmt.Sprintf("Loaded %d bookmarks", count),
	}
}
