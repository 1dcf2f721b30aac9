// Package models defines domain entities for the MoviTV terminal client.
//
// The package contains two categories of types:
//
// 1. Session state: the authenticated identity of the current visitor
//   - [Session] : token + user id, persisted locally between runs
//   - [Profile] : editable account details returned by the catalog service
//
// 2. Bookmark data: the user's saved titles and their display metadata
//   - [BookmarkRecord] : a raw bookmark reference from the catalog service
//   - [MetadataRecord] : read-only display data resolved from TMDB
//   - [EnrichedBookmark] : the join of the two, the only shape rendered
//
// [Notification] is the transient message contract consumed by the CLI
// output layer and the TUI status line.
package models
