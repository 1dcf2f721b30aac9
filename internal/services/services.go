package services

import (
	"context"
	"fmt"

	"movitv/internal/models"
)

// Catalog defines the operations the client performs against the MoviTV
// catalog service.
type Catalog interface {
	// Login exchanges email/password credentials for a session.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Register creates an account and returns the new session.
	Register(ctx context.Context, email, password string) (models.Session, error)

	// GoogleAuthURL returns the catalog's OAuth entry point with the given
	// redirect target. The browser is sent here; the catalog redirects back
	// with the encoded user payload.
	GoogleAuthURL(redirectURI string) string

	// Bookmarks lists the raw bookmarks of one media type for a user.
	Bookmarks(ctx context.Context, sess models.Session, mediaType models.MediaType) ([]models.BookmarkRecord, error)

	// AddBookmark creates a bookmark for the subject. Success is HTTP 201.
	AddBookmark(ctx context.Context, sess models.Session, subjectID string, mediaType models.MediaType) error

	// RemoveBookmark deletes a bookmark by its server-assigned id. Success is HTTP 200.
	RemoveBookmark(ctx context.Context, sess models.Session, bookmarkID string, mediaType models.MediaType) error

	// Profile fetches the account profile keyed by the session token.
	Profile(ctx context.Context, sess models.Session) (*models.Profile, error)

	// SaveProfile updates the account profile and returns the stored copy.
	SaveProfile(ctx context.Context, sess models.Session, profile *models.Profile) (*models.Profile, error)

	// Name returns the service name for logging and display.
	Name() string
}

// Metadata defines the read-only lookups performed against the third-party
// metadata service. Only Details participates in bookmark enrichment; the
// rest back the browse and detail views.
type Metadata interface {
	// Details resolves display metadata for a subject id. Not-found and
	// network errors are returned as-is; the caller decides whether they
	// are fatal (detail page) or tolerated per-item (enrichment).
	Details(ctx context.Context, subjectID string, mediaType models.MediaType) (*models.MetadataRecord, error)

	Name() string
}

// APIError is a non-2xx response from a remote service, carrying the
// server's error message when the payload provided one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}
