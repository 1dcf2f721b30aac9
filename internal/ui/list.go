package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"movitv/internal/models"
)

var (
	_ list.Item = bookmarkItem{}
)

// bookmarkItem wraps [models.EnrichedBookmark] to implement [list.Item].
//
// FilterValue returns the display title, so the list's built-in filtering
// matches the same case-insensitive title search the CLI performs.
type bookmarkItem struct {
	bookmark models.EnrichedBookmark
}

func (i bookmarkItem) FilterValue() string { return i.bookmark.DisplayTitle() }

func (i bookmarkItem) Title() string {
	if title := i.bookmark.DisplayTitle(); title != "" {
		return title
	}
	return fmt.Sprintf("(unresolved %s)", i.bookmark.SubjectID)
}

func (i bookmarkItem) Description() string {
	desc := i.bookmark.MediaType.Label()
	if i.bookmark.Metadata == nil {
		return desc
	}
	if year := i.bookmark.Metadata.Year(); year != "" {
		desc = fmt.Sprintf("%s • %s", desc, year)
	}
	if i.bookmark.Metadata.VoteAverage > 0 {
		desc = fmt.Sprintf("%s • ★ %.1f", desc, i.bookmark.Metadata.VoteAverage)
	}
	return desc
}
