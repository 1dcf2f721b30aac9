// Package session implements the client-side session store.
//
// The store is the single source of truth for "is this visitor logged in",
// read by every command before it touches the network. State is persisted
// through a [Storage] backend (SQLite in production) so it survives between
// runs, the way the web client's origin-scoped storage survives reloads.
//
// Storage failures are deliberately non-fatal: they are logged as warnings
// and the store degrades to the unauthenticated state rather than aborting
// the caller.
package session

import (
	"github.com/charmbracelet/log"

	"movitv/internal/models"
	"movitv/internal/repositories"
	"movitv/internal/shared"
)

// Storage is the persistence backend for session fields.
// Implemented by [repositories.SessionRepository].
type Storage interface {
	All() (map[string]string, error)
	SetAll(pairs map[string]string) error
	Clear() error
}

// Store tracks the authenticated identity of the current visitor.
type Store struct {
	storage Storage
	logger  *log.Logger
}

// NewStore creates a session store over the given storage backend.
func NewStore(storage Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{storage: storage, logger: logger}
}

// Current loads the persisted session. A storage failure yields the zero
// (unauthenticated) session and a warning.
func (s *Store) Current() models.Session {
	pairs, err := s.storage.All()
	if err != nil {
		s.logger.Warn("failed to read session storage", "error", err)
		return models.Session{}
	}

	return models.Session{
		Token:       pairs[repositories.KeyToken],
		UserID:      pairs[repositories.KeyUserID],
		UserName:    pairs[repositories.KeyUserName],
		UserEmail:   pairs[repositories.KeyUserEmail],
		UserPicture: pairs[repositories.KeyUserPicture],
	}
}

// IsAuthenticated reports whether a token is persisted. No freshness check
// is performed; the catalog service rejects stale tokens server-side.
func (s *Store) IsAuthenticated() bool {
	return s.Current().IsAuthenticated()
}

// Login persists the credential token and user identifier.
func (s *Store) Login(token, userID string) {
	s.persist(models.Session{Token: token, UserID: userID})
}

// LoginSession persists a full session, including the cached profile fields
// carried by the Google callback payload.
func (s *Store) LoginSession(sess models.Session) {
	s.persist(sess)
}

// Logout clears every persisted session field, cached profile fields
// included. Safe to call when already logged out.
func (s *Store) Logout() {
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear session storage", "error", err)
	}
}

func (s *Store) persist(sess models.Session) {
	pairs := map[string]string{
		repositories.KeyToken:  sess.Token,
		repositories.KeyUserID: sess.UserID,
	}
	if sess.UserName != "" {
		pairs[repositories.KeyUserName] = sess.UserName
	}
	if sess.UserEmail != "" {
		pairs[repositories.KeyUserEmail] = sess.UserEmail
	}
	if sess.UserPicture != "" {
		pairs[repositories.KeyUserPicture] = sess.UserPicture
	}

	if err := s.storage.SetAll(pairs); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}
}
