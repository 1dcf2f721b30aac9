package models

import "strings"

// MediaType distinguishes movie bookmarks from TV series bookmarks.
//
// The catalog service exposes separate sub-resources for the two, so the
// type travels with every bookmark operation.
type MediaType string

const (
	Movie  MediaType = "movie"
	Series MediaType = "tvSeries"
)

// Valid reports whether the media type is one of the two known values.
func (m MediaType) Valid() bool {
	return m == Movie || m == Series
}

// Label returns the human-readable name used in notifications.
func (m MediaType) Label() string {
	if m == Series {
		return "TV Series"
	}
	return "Movie"
}

// ParseMediaType normalizes user input ("movie", "tv", "series", "tvseries")
// into a [MediaType]. Returns false for anything else.
func ParseMediaType(s string) (MediaType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return Movie, true
	case "tv", "series", "tvseries", "tv-series":
		return Series, true
	default:
		return "", false
	}
}

// Session is the authenticated identity of the current visitor.
//
// An empty Token means "not logged in". No expiry check is performed on the
// client; the catalog service rejects stale tokens on its own.
type Session struct {
	Token       string
	UserID      string
	UserName    string
	UserEmail   string
	UserPicture string
}

// IsAuthenticated reports whether a token is present.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// BookmarkRecord is a user's saved reference to a title as returned by the
// catalog service. BookmarkID is assigned by the server on creation and is
// the only field with a uniqueness guarantee; the same SubjectID may appear
// more than once.
type BookmarkRecord struct {
	BookmarkID string
	SubjectID  string
	MediaType  MediaType
}

// MetadataRecord holds the display fields consumed from TMDB. It is fetched
// fresh per refresh and never persisted.
type MetadataRecord struct {
	SubjectID    string
	Title        string
	Overview     string
	ReleaseDate  string
	PosterPath   string
	BackdropPath string
	VoteAverage  float64
}

// Year extracts the four-digit year from the release/first-air date, or ""
// when the date is absent or malformed.
func (m MetadataRecord) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// EnrichedBookmark joins a [BookmarkRecord] with its [MetadataRecord].
// Metadata is nil when enrichment failed for this item; the bookmark is
// still part of the collection.
type EnrichedBookmark struct {
	BookmarkRecord
	Metadata *MetadataRecord
}

// DisplayTitle returns the metadata title, or "" when metadata is absent.
func (e EnrichedBookmark) DisplayTitle() string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata.Title
}

// NotificationKind is the severity of a transient notification.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is the transient message contract surfaced after bookmark
// operations, mirroring the toast/snackbar behavior of the web client.
type Notification struct {
	ID      string
	Message string
	Kind    NotificationKind
}

// Profile holds the account details served by the catalog's profile
// endpoints. Google-authenticated sessions carry name/email/picture in the
// session itself and never hit these endpoints.
type Profile struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Picture     string `json:"picture,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	IsGoogle    bool   `json:"isGoogleUser,omitempty"`
}
