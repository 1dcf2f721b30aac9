// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"

	"movitv/internal/models"
)

// MockCatalog is a test double for the catalog service. Each operation
// counts toward Calls so tests can assert that gated operations issue zero
// network calls.
type MockCatalog struct {
	BookmarksFunc func(ctx context.Context, sess models.Session, mediaType models.MediaType) ([]models.BookmarkRecord, error)
	AddFunc       func(ctx context.Context, sess models.Session, subjectID string, mediaType models.MediaType) error
	RemoveFunc    func(ctx context.Context, sess models.Session, bookmarkID string, mediaType models.MediaType) error

	calls atomic.Int64
}

// Calls returns how many remote operations were attempted.
func (m *MockCatalog) Calls() int64 {
	return m.calls.Load()
}

func (m *MockCatalog) Bookmarks(ctx context.Context, sess models.Session, mediaType models.MediaType) ([]models.BookmarkRecord, error) {
	m.calls.Add(1)
	if m.BookmarksFunc == nil {
		return nil, nil
	}
	return m.BookmarksFunc(ctx, sess, mediaType)
}

func (m *MockCatalog) AddBookmark(ctx context.Context, sess models.Session, subjectID string, mediaType models.MediaType) error {
	m.calls.Add(1)
	if m.AddFunc == nil {
		return nil
	}
	return m.AddFunc(ctx, sess, subjectID, mediaType)
}

func (m *MockCatalog) RemoveBookmark(ctx context.Context, sess models.Session, bookmarkID string, mediaType models.MediaType) error {
	m.calls.Add(1)
	if m.RemoveFunc == nil {
		return nil
	}
	return m.RemoveFunc(ctx, sess, bookmarkID, mediaType)
}

// MockResolver is a test double for the metadata service.
type MockResolver struct {
	DetailsFunc func(ctx context.Context, subjectID string, mediaType models.MediaType) (*models.MetadataRecord, error)

	calls atomic.Int64
}

// Calls returns how many lookups were attempted.
func (m *MockResolver) Calls() int64 {
	return m.calls.Load()
}

func (m *MockResolver) Details(ctx context.Context, subjectID string, mediaType models.MediaType) (*models.MetadataRecord, error) {
	m.calls.Add(1)
	if m.DetailsFunc == nil {
		return &models.MetadataRecord{SubjectID: subjectID}, nil
	}
	return m.DetailsFunc(ctx, subjectID, mediaType)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// Discard is an io.Writer for silencing command output in tests.
var Discard io.Writer = io.Discard
