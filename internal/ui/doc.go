// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the bookmark collection:
//  1. [LoadingView] : Refresh in flight, showing progress updates
//  2. [BookmarkListView] : Browse, filter, and select bookmarks
//  3. [DetailView] : Full metadata for one title
//  4. [ConfirmRemoveView] : Confirm removal
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the bookmark engine, providing non-blocking status reporting during refreshes.
//
// List filtering reuses the same case-insensitive title match as the CLI search command.
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, x, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
