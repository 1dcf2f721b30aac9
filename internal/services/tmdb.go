// TMDB implementation of [Metadata]
//
// Response types based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"movitv/internal/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// TMDBTitle is a movie or TV entry as TMDB serves it. Movies carry
// title/release_date, TV series name/first_air_date; both are decoded and
// normalized in [TMDBTitle.Record].
type TMDBTitle struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	Runtime      int     `json:"runtime"`
	GenreIDs     []int   `json:"genre_ids"`
}

// Record normalizes a TMDB title into the fixed [models.MetadataRecord] shape.
func (t TMDBTitle) Record() *models.MetadataRecord {
	title := t.Title
	if title == "" {
		title = t.Name
	}
	date := t.ReleaseDate
	if date == "" {
		date = t.FirstAirDate
	}
	return &models.MetadataRecord{
		SubjectID:    strconv.Itoa(t.ID),
		Title:        title,
		Overview:     t.Overview,
		ReleaseDate:  date,
		PosterPath:   t.PosterPath,
		BackdropPath: t.BackdropPath,
		VoteAverage:  t.VoteAverage,
	}
}

// TMDBPage is a paginated result listing. TMDB caps page navigation at 500
// pages regardless of total_pages.
type TMDBPage struct {
	Page         int         `json:"page"`
	Results      []TMDBTitle `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBGenre is a genre list entry.
type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TMDBCastMember is a credits entry.
type TMDBCastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// TMDBVideo is a videos entry; trailers have Type "Trailer" and Site "YouTube".
type TMDBVideo struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// TMDBService implements [Metadata] against the TMDB v3 API.
//
// Authentication prefers the v4 read access token (bearer, via an [oauth2]
// static token source); the v3 api_key query parameter is the fallback.
type TMDBService struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

// NewTMDBService creates a TMDB client. Either readToken or apiKey must be
// set for requests to succeed; language defaults to en-US.
func NewTMDBService(apiKey, readToken, language string) *TMDBService {
	if language == "" {
		language = "en-US"
	}

	client := http.DefaultClient
	if readToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: readToken, TokenType: "Bearer"})
		client = oauth2.NewClient(context.Background(), src)
	}

	return &TMDBService{
		baseURL:    tmdbBaseURL,
		apiKey:     apiKey,
		language:   language,
		httpClient: client,
	}
}

func (t *TMDBService) Name() string {
	return "TMDB"
}

// ImageURL resolves a poster/backdrop path against the w500 image host.
func ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return tmdbImageBaseURL + path
}

// doRequest performs a GET against the TMDB API with language and api_key
// parameters applied.
func (t *TMDBService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("language", t.language)
	if t.apiKey != "" {
		params.Set("api_key", t.apiKey)
	}

	apiURL := fmt.Sprintf("%s%s?%s", t.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			StatusMessage string `json:"status_message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.StatusMessage}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// resource maps a media type to the TMDB path segment.
func resource(mediaType models.MediaType) string {
	if mediaType == models.Series {
		return "tv"
	}
	return "movie"
}

// Details resolves display metadata for a single subject id.
func (t *TMDBService) Details(ctx context.Context, subjectID string, mediaType models.MediaType) (*models.MetadataRecord, error) {
	var title TMDBTitle
	endpoint := fmt.Sprintf("/%s/%s", resource(mediaType), subjectID)
	if err := t.doRequest(ctx, endpoint, nil, &title); err != nil {
		return nil, err
	}
	record := title.Record()
	record.SubjectID = subjectID
	return record, nil
}

// Credits retrieves the cast list for a title.
func (t *TMDBService) Credits(ctx context.Context, subjectID string, mediaType models.MediaType) ([]TMDBCastMember, error) {
	var response struct {
		Cast []TMDBCastMember `json:"cast"`
	}
	endpoint := fmt.Sprintf("/%s/%s/credits", resource(mediaType), subjectID)
	if err := t.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Cast, nil
}

// Videos retrieves the video list for a title.
func (t *TMDBService) Videos(ctx context.Context, subjectID string, mediaType models.MediaType) ([]TMDBVideo, error) {
	var response struct {
		Results []TMDBVideo `json:"results"`
	}
	endpoint := fmt.Sprintf("/%s/%s/videos", resource(mediaType), subjectID)
	if err := t.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// TrailerURL picks the first YouTube trailer from a video list, or "".
func TrailerURL(videos []TMDBVideo) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return "https://www.youtube.com/watch?v=" + v.Key
		}
	}
	return ""
}

// Recommendations retrieves recommended titles for a subject.
func (t *TMDBService) Recommendations(ctx context.Context, subjectID string, mediaType models.MediaType) (*TMDBPage, error) {
	var page TMDBPage
	endpoint := fmt.Sprintf("/%s/%s/recommendations", resource(mediaType), subjectID)
	if err := t.doRequest(ctx, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Genres retrieves the genre list for a media type.
func (t *TMDBService) Genres(ctx context.Context, mediaType models.MediaType) ([]TMDBGenre, error) {
	var response struct {
		Genres []TMDBGenre `json:"genres"`
	}
	endpoint := fmt.Sprintf("/genre/%s/list", resource(mediaType))
	if err := t.doRequest(ctx, endpoint, nil, &response); err != nil {
		return nil, err
	}
	return response.Genres, nil
}

// Trending retrieves the daily trending movie feed.
func (t *TMDBService) Trending(ctx context.Context) (*TMDBPage, error) {
	var page TMDBPage
	if err := t.doRequest(ctx, "/trending/movie/day", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NowPlaying retrieves the now-playing movie feed.
func (t *TMDBService) NowPlaying(ctx context.Context, pageNum int) (*TMDBPage, error) {
	return t.pagedFeed(ctx, "/movie/now_playing", pageNum, nil)
}

// Upcoming retrieves the upcoming movie feed.
func (t *TMDBService) Upcoming(ctx context.Context, pageNum int) (*TMDBPage, error) {
	return t.pagedFeed(ctx, "/movie/upcoming", pageNum, nil)
}

// Discover browses movies, optionally filtered to the given genre ids.
func (t *TMDBService) Discover(ctx context.Context, pageNum int, genreIDs []int) (*TMDBPage, error) {
	params := url.Values{}
	if len(genreIDs) > 0 {
		ids := make([]string, len(genreIDs))
		for i, id := range genreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	return t.pagedFeed(ctx, "/discover/movie", pageNum, params)
}

// SearchMovies searches movies by title.
func (t *TMDBService) SearchMovies(ctx context.Context, query string, pageNum int) (*TMDBPage, error) {
	params := url.Values{}
	params.Set("query", query)
	return t.pagedFeed(ctx, "/search/movie", pageNum, params)
}

func (t *TMDBService) pagedFeed(ctx context.Context, endpoint string, pageNum int, params url.Values) (*TMDBPage, error) {
	if params == nil {
		params = url.Values{}
	}
	if pageNum <= 0 {
		pageNum = 1
	}
	params.Set("page", strconv.Itoa(pageNum))

	var page TMDBPage
	if err := t.doRequest(ctx, endpoint, params, &page); err != nil {
		return nil, err
	}
	// TMDB rejects page numbers past 500 even when total_pages is larger
	if page.TotalPages > 500 {
		page.TotalPages = 500
	}
	return &page, nil
}
