package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"movitv/internal/models"
	"movitv/internal/services"
	"movitv/internal/shared"
)

// LoadState is the lifecycle of the enriched bookmark collection.
type LoadState int

const (
	Idle LoadState = iota
	Loading
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// Outcome is the result of a bookmark mutation, consumed by the CLI and TUI
// layers. LoginRequired is a distinct, non-error outcome: the UI prompts
// for login instead of showing a failure.
type Outcome struct {
	Notification  models.Notification
	LoginRequired bool
}

// Ok reports whether the operation succeeded.
func (o Outcome) Ok() bool {
	return !o.LoginRequired && o.Notification.Kind == models.NotifySuccess
}

// BookmarkCatalog is the slice of the catalog service the engine needs.
// Implemented by [services.CatalogService].
type BookmarkCatalog interface {
	Bookmarks(ctx context.Context, sess models.Session, mediaType models.MediaType) ([]models.BookmarkRecord, error)
	AddBookmark(ctx context.Context, sess models.Session, subjectID string, mediaType models.MediaType) error
	RemoveBookmark(ctx context.Context, sess models.Session, bookmarkID string, mediaType models.MediaType) error
}

// MetadataResolver resolves display metadata for a subject id.
// Implemented by [services.TMDBService].
type MetadataResolver interface {
	Details(ctx context.Context, subjectID string, mediaType models.MediaType) (*models.MetadataRecord, error)
}

// Synchronizer defines operations on the user's bookmark collection.
type Synchronizer interface {
	// Refresh rebuilds the enriched collection for the session.
	Refresh(ctx context.Context, sess models.Session, progress chan<- ProgressUpdate) error

	// Add creates a bookmark. The collection is unchanged on success; the
	// new bookmark appears on the next Refresh.
	Add(ctx context.Context, sess models.Session, subjectID string, mediaType models.MediaType) Outcome

	// Remove deletes a bookmark and, on success, drops the matching record
	// from the collection.
	Remove(ctx context.Context, sess models.Session, bookmarkID string, mediaType models.MediaType) Outcome

	// Search filters the loaded collection by display title. An empty
	// query returns the full collection.
	Search(query string) []models.EnrichedBookmark

	// Bookmarks returns the current enriched collection.
	Bookmarks() []models.EnrichedBookmark

	// State returns the collection lifecycle state.
	State() LoadState

	// LoginRequired reports whether the last Refresh was skipped because
	// the session was unauthenticated.
	LoginRequired() bool

	// Failure returns the displayable message of a Failed refresh.
	Failure() string
}

// BookmarkEngine implements [Synchronizer].
//
// The engine owns its collection exclusively: it is replaced wholesale by
// Refresh and pointwise filtered by Remove, by the single caller. It is not
// safe for concurrent use.
type BookmarkEngine struct {
	catalog       BookmarkCatalog
	metadata      MetadataResolver
	limiter       *rate.Limiter
	logger        *log.Logger
	bookmarks     []models.EnrichedBookmark
	state         LoadState
	loginRequired bool
	failure       string
}

// NewBookmarkEngine creates an engine over the given services. lookupsPerSec
// bounds concurrent TMDB lookups during Refresh; zero or negative disables
// the bound.
func NewBookmarkEngine(catalog BookmarkCatalog, metadata MetadataResolver, lookupsPerSec float64, logger *log.Logger) *BookmarkEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if lookupsPerSec > 0 {
		limit = rate.Limit(lookupsPerSec)
	}

	return &BookmarkEngine{
		catalog:  catalog,
		metadata: metadata,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger,
		state:    Idle,
	}
}

// State returns the collection lifecycle state.
func (e *BookmarkEngine) State() LoadState { return e.state }

// LoginRequired reports whether the last Refresh found no session.
func (e *BookmarkEngine) LoginRequired() bool { return e.loginRequired }

// Failure returns the displayable message of a Failed refresh, or "".
func (e *BookmarkEngine) Failure() string { return e.failure }

// Bookmarks returns a copy of the enriched collection, movies before
// series, server order within each.
func (e *BookmarkEngine) Bookmarks() []models.EnrichedBookmark {
	out := make([]models.EnrichedBookmark, len(e.bookmarks))
	copy(out, e.bookmarks)
	return out
}

// Refresh rebuilds the enriched bookmark collection.
//
// Without an authenticated session the result is Ready with an empty
// collection and the login-required flag set; nothing is fetched. A list
// fetch failure moves to Failed with a displayable message. Individual
// metadata lookup failures are tolerated per item.
func (e *BookmarkEngine) Refresh(ctx context.Context, sess models.Session, progress chan<- ProgressUpdate) error {
	if !sess.IsAuthenticated() {
		e.state = Ready
		e.loginRequired = true
		e.failure = ""
		e.bookmarks = nil
		return nil
	}
	e.loginRequired = false
	e.failure = ""

	prev := e.state
	e.state = Loading

	e.sendProgress(progress, fetchBookmarksUpdate(models.Movie, 1, 2))
	movies, err := e.catalog.Bookmarks(ctx, sess, models.Movie)
	if err != nil {
		return e.fail("Failed to load movie bookmarks", err)
	}

	e.sendProgress(progress, fetchBookmarksUpdate(models.Series, 2, 2))
	series, err := e.catalog.Bookmarks(ctx, sess, models.Series)
	if err != nil {
		return e.fail("Failed to load TV series bookmarks", err)
	}

	records := make([]models.BookmarkRecord, 0, len(movies)+len(series))
	records = append(records, movies...)
	records = append(records, series...)

	enriched := e.enrich(ctx, records, progress)

	if err := ctx.Err(); err != nil {
		// The caller went away mid-refresh; drop the assembled results
		// instead of applying them.
		e.state = prev
		return err
	}

	e.bookmarks = enriched
	e.state = Ready
	e.sendProgress(progress, readyUpdate(len(enriched)))
	return nil
}

// enrich resolves metadata for each record concurrently. Results land in
// per-index slots, so collection order is independent of completion order.
func (e *BookmarkEngine) enrich(ctx context.Context, records []models.BookmarkRecord, progress chan<- ProgressUpdate) []models.EnrichedBookmark {
	enriched := make([]models.EnrichedBookmark, len(records))

	var wg sync.WaitGroup
	for i, rec := range records {
		enriched[i] = models.EnrichedBookmark{BookmarkRecord: rec}

		if rec.SubjectID == "" {
			e.logger.Warn("bookmark has no subject id", "bookmark", rec.BookmarkID)
			continue
		}

		wg.Add(1)
		go func(i int, rec models.BookmarkRecord) {
			defer wg.Done()

			if err := e.limiter.Wait(ctx); err != nil {
				return
			}

			metadata, err := e.metadata.Details(ctx, rec.SubjectID, rec.MediaType)
			if err != nil {
				// Tolerated per item: the bookmark stays in the
				// collection with absent metadata.
				e.logger.Warn("metadata lookup failed", "subject", rec.SubjectID, "error", err)
				return
			}

			enriched[i].Metadata = metadata
			e.sendProgress(progress, enrichedUpdate(i+1, len(records), metadata.Title))
		}(i, rec)
	}
	wg.Wait()

	return enriched
}

// Add creates a bookmark on the catalog. On success the in-memory
// collection is left untouched; the bookmark appears on the next Refresh.
func (e *BookmarkEngine) Add(ctx context.Context, sess models.Session, subjectID string, mediaType models.MediaType) Outcome {
	if !sess.IsAuthenticated() {
		return loginRequiredOutcome("Please login to add bookmarks")
	}

	if err := e.catalog.AddBookmark(ctx, sess, subjectID, mediaType); err != nil {
		fallback := fmt.Sprintf("Failed to bookmark %s", lowerLabel(mediaType))
		return errorOutcome(displayMessage(err, fallback))
	}

	return successOutcome(fmt.Sprintf("%s bookmarked successfully!", mediaType.Label()))
}

// Remove deletes a bookmark on the catalog and, on success, removes exactly
// the record with that bookmark id from the collection. Other records with
// the same subject are untouched. On failure the collection is unchanged.
func (e *BookmarkEngine) Remove(ctx context.Context, sess models.Session, bookmarkID string, mediaType models.MediaType) Outcome {
	if sess.Token == "" || sess.UserID == "" {
		return loginRequiredOutcome("Please login to remove bookmarks")
	}

	if err := e.catalog.RemoveBookmark(ctx, sess, bookmarkID, mediaType); err != nil {
		fallback := fmt.Sprintf("Failed to remove %s bookmark", lowerLabel(mediaType))
		return errorOutcome(displayMessage(err, fallback))
	}

	kept := make([]models.EnrichedBookmark, 0, len(e.bookmarks))
	for _, b := range e.bookmarks {
		if b.BookmarkID == bookmarkID {
			continue
		}
		kept = append(kept, b)
	}
	e.bookmarks = kept

	return successOutcome(fmt.Sprintf("%s bookmark removed successfully", mediaType.Label()))
}

// Search filters the loaded collection by display title, case-insensitive
// substring. An empty query returns the full collection. The stored
// collection is never mutated; clearing a search in the UI goes through a
// fresh Refresh rather than a cached snapshot.
func (e *BookmarkEngine) Search(query string) []models.EnrichedBookmark {
	query = strings.TrimSpace(query)
	if query == "" {
		return e.Bookmarks()
	}

	query = strings.ToLower(query)
	matched := make([]models.EnrichedBookmark, 0)
	for _, b := range e.bookmarks {
		if strings.Contains(strings.ToLower(b.DisplayTitle()), query) {
			matched = append(matched, b)
		}
	}
	return matched
}

func (e *BookmarkEngine) fail(fallback string, err error) error {
	e.state = Failed
	e.failure = displayMessage(err, fallback)
	e.bookmarks = nil
	return err
}

// sendProgress sends a progress update through the channel without blocking.
func (e *BookmarkEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// displayMessage extracts the server-provided error message when the remote
// call carried one, falling back to a generic message otherwise.
func displayMessage(err error, fallback string) string {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// lowerLabel matches the casing the fallback messages use ("movie",
// "TV series").
func lowerLabel(mediaType models.MediaType) string {
	if mediaType == models.Series {
		return "TV series"
	}
	return "movie"
}

func successOutcome(message string) Outcome {
	return Outcome{Notification: models.Notification{
		ID:      shared.GenerateID(),
		Message: message,
		Kind:    models.NotifySuccess,
	}}
}

func errorOutcome(message string) Outcome {
	return Outcome{Notification: models.Notification{
		ID:      shared.GenerateID(),
		Message: message,
		Kind:    models.NotifyError,
	}}
}

func loginRequiredOutcome(message string) Outcome {
	out := errorOutcome(message)
	out.LoginRequired = true
	return out
}
