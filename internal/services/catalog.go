// Catalog service implementation of [Catalog]
//
// Endpoint paths mirror the MoviTV backend API; they are load-bearing and
// must not be normalized.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"movitv/internal/models"
)

// Loose response/request shapes as the catalog serves them. The subject id
// field name varies by endpoint (movieId, tvSeriesId, tmdbId); all variants
// are decoded and the first non-empty one wins.

type catalogBookmark struct {
	ID         string `json:"_id"`
	MovieID    string `json:"movieId,omitempty"`
	TVSeriesID string `json:"tvSeriesId,omitempty"`
	TMDBID     string `json:"tmdbId,omitempty"`
}

func (b catalogBookmark) subjectID(mediaType models.MediaType) string {
	if mediaType == models.Series {
		if b.TVSeriesID != "" {
			return b.TVSeriesID
		}
	} else if b.MovieID != "" {
		return b.MovieID
	}
	return b.TMDBID
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	JWTToken string `json:"jwtToken"`
	UserID   string `json:"userId"`
}

type addMovieRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
	TMDBID  string `json:"tmdbId"`
}

type addSeriesRequest struct {
	UserID     string `json:"userId"`
	TVSeriesID string `json:"tvSeriesId"`
	TMDBID     string `json:"tmdbId"`
}

// catalogError is the error payload shape. Auth endpoints use "message",
// bookmark endpoints use "error".
type catalogError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e catalogError) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// CatalogService implements [Catalog] over the MoviTV HTTP API.
type CatalogService struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogService creates a catalog client for the given base URL
// (scheme + host, no /api suffix).
func NewCatalogService(baseURL string, client *http.Client) *CatalogService {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogService{baseURL: baseURL, httpClient: client}
}

func (c *CatalogService) Name() string {
	return "MoviTV Catalog"
}

// doRequest performs an HTTP request against the catalog API. The bearer
// token is attached when non-empty. Non-2xx responses decode the error
// payload into an [*APIError].
func (c *CatalogService) doRequest(ctx context.Context, method, endpoint, token string, body, result any) (int, error) {
	apiURL := c.baseURL + "/api" + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload catalogError
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: payload.text()}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// Login exchanges email/password for a session token.
func (c *CatalogService) Login(ctx context.Context, email, password string) (models.Session, error) {
	var auth authResponse
	_, err := c.doRequest(ctx, http.MethodPost, "/login", "", credentialsRequest{Email: email, Password: password}, &auth)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: auth.JWTToken, UserID: auth.UserID}, nil
}

// Register creates an account and returns its session.
func (c *CatalogService) Register(ctx context.Context, email, password string) (models.Session, error) {
	var auth authResponse
	_, err := c.doRequest(ctx, http.MethodPost, "/register", "", credentialsRequest{Email: email, Password: password}, &auth)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: auth.JWTToken, UserID: auth.UserID}, nil
}

// GoogleAuthURL returns the OAuth entry point with the redirect target encoded.
func (c *CatalogService) GoogleAuthURL(redirectURI string) string {
	return fmt.Sprintf("%s/api/auth/google?redirect_uri=%s", c.baseURL, url.QueryEscape(redirectURI))
}

// Bookmarks lists raw bookmarks of one media type, scoped to the session's
// user and authenticated with its token.
func (c *CatalogService) Bookmarks(ctx context.Context, sess models.Session, mediaType models.MediaType) ([]models.BookmarkRecord, error) {
	endpoint := fmt.Sprintf("/showmoviebookmarks/movies/%s", sess.UserID)
	if mediaType == models.Series {
		endpoint = fmt.Sprintf("/showbookmarks/tvseries/%s", sess.UserID)
	}

	var raw []catalogBookmark
	if _, err := c.doRequest(ctx, http.MethodGet, endpoint, sess.Token, nil, &raw); err != nil {
		return nil, err
	}

	records := make([]models.BookmarkRecord, 0, len(raw))
	for _, b := range raw {
		records = append(records, models.BookmarkRecord{
			BookmarkID: b.ID,
			SubjectID:  b.subjectID(mediaType),
			MediaType:  mediaType,
		})
	}
	return records, nil
}

// AddBookmark creates a bookmark. The catalog signals success with 201; any
// other 2xx is treated as a protocol violation.
func (c *CatalogService) AddBookmark(ctx context.Context, sess models.Session, subjectID string, mediaType models.MediaType) error {
	var endpoint string
	var body any
	if mediaType == models.Series {
		endpoint = "/addtvseriesbookmark/tvseries"
		body = addSeriesRequest{UserID: sess.UserID, TVSeriesID: subjectID, TMDBID: subjectID}
	} else {
		endpoint = "/addmoviebookmark/movie"
		body = addMovieRequest{UserID: sess.UserID, MovieID: subjectID, TMDBID: subjectID}
	}

	status, err := c.doRequest(ctx, http.MethodPost, endpoint, sess.Token, body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return &APIError{StatusCode: status}
	}
	return nil
}

// RemoveBookmark deletes a bookmark by its server-assigned id.
func (c *CatalogService) RemoveBookmark(ctx context.Context, sess models.Session, bookmarkID string, mediaType models.MediaType) error {
	endpoint := fmt.Sprintf("/deletemoviebookmark/movie/%s/%s", sess.UserID, bookmarkID)
	if mediaType == models.Series {
		endpoint = fmt.Sprintf("/deletebookmark/tvseries/%s/%s", sess.UserID, bookmarkID)
	}

	status, err := c.doRequest(ctx, http.MethodDelete, endpoint, sess.Token, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{StatusCode: status}
	}
	return nil
}

// Profile fetches the account profile keyed by the session token.
func (c *CatalogService) Profile(ctx context.Context, sess models.Session) (*models.Profile, error) {
	var profile models.Profile
	endpoint := fmt.Sprintf("/profile/%s", sess.Token)
	if _, err := c.doRequest(ctx, http.MethodGet, endpoint, sess.Token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile updates the account profile and returns the stored copy.
func (c *CatalogService) SaveProfile(ctx context.Context, sess models.Session, profile *models.Profile) (*models.Profile, error) {
	var saved models.Profile
	endpoint := fmt.Sprintf("/saveProfile/%s", sess.Token)
	if _, err := c.doRequest(ctx, http.MethodPut, endpoint, sess.Token, profile, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
