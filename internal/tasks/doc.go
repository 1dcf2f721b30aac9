// Package tasks orchestrates the bookmark list shown to the user, joining
// the catalog service's raw bookmarks with TMDB display metadata.
//
// # Core Operations
//
// The [Synchronizer] interface defines four operations:
//
//  1. [Synchronizer.Refresh] : Rebuild the enriched bookmark collection
//     - Fetches movie bookmarks, then TV series bookmarks
//     - Resolves metadata for each item concurrently against TMDB
//     - A failed lookup leaves that item's metadata absent; the refresh
//       still succeeds with the full item count
//
//  2. [Synchronizer.Add] : Create a bookmark on the catalog
//     - The collection is NOT updated locally; the new bookmark appears on
//       the next Refresh
//
//  3. [Synchronizer.Remove] : Delete a bookmark on the catalog
//     - On HTTP 200 the matching record is removed from the collection
//
//  4. [Synchronizer.Search] : Pure, case-insensitive title filter over the
//     loaded collection; never touches the network and never mutates the
//     stored collection
//
// Both Add and Remove are gated on the session: without a token they report
// a login-required [Outcome] and make no remote call.
//
// # State Machine
//
// Each Refresh moves through Idle → Loading → {Ready | Failed}. Failed
// carries a displayable message and an empty collection; partial enrichment
// failure is never a list-level failure.
//
// # Progress Reporting
//
// Refresh emits [ProgressUpdate] values on an optional channel using
// non-blocking sends, so slow consumers never stall the fetch.
//
// # Concurrency
//
// A [BookmarkEngine] belongs to a single caller (one command invocation or
// one TUI session). Metadata lookups inside Refresh run on goroutines
// bounded by a rate limiter; results are written to per-item slots, so
// completion order does not affect collection order (movies before series,
// server order within each). When the context is cancelled mid-refresh the
// assembled results are dropped instead of applied.
package tasks
