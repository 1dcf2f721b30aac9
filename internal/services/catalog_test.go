package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"movitv/internal/models"
)

func TestCatalogService(t *testing.T) {
	sess := models.Session{Token: "t1", UserID: "u1"}

	t.Run("Login", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				var creds credentialsRequest
				if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
					t.Fatalf("failed to decode credentials: %v", err)
				}
				if creds.Email != "dom@example.com" {
					t.Errorf("unexpected email: %s", creds.Email)
				}
				json.NewEncoder(w).Encode(authResponse{JWTToken: "jwt-1", UserID: "u1"})
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			got, err := catalog.Login(context.Background(), "dom@example.com", "secret")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.Token != "jwt-1" || got.UserID != "u1" {
				t.Errorf("unexpected session: %+v", got)
			}
		})

		t.Run("Server Message Surfaces", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			_, err := catalog.Login(context.Background(), "dom@example.com", "wrong")
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Message != "Invalid credentials" {
				t.Errorf("expected server message, got %q", apiErr.Message)
			}
		})
	})

	t.Run("GoogleAuthURL", func(t *testing.T) {
		catalog := NewCatalogService("https://catalog.example.com", nil)
		got := catalog.GoogleAuthURL("http://localhost:3000/callback")
		want := "https://catalog.example.com/api/auth/google?redirect_uri=http%3A%2F%2Flocalhost%3A3000%2Fcallback"
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("Bookmarks", func(t *testing.T) {
		t.Run("Movies Normalize movieId", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/showmoviebookmarks/movies/u1" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer t1" {
					t.Errorf("expected bearer token, got %q", got)
				}
				json.NewEncoder(w).Encode([]map[string]string{
					{"_id": "b1", "movieId": "100"},
					{"_id": "b2", "tmdbId": "200"},
				})
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			records, err := catalog.Bookmarks(context.Background(), sess, models.Movie)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("expected 2 records, got %d", len(records))
			}
			if records[0].BookmarkID != "b1" || records[0].SubjectID != "100" {
				t.Errorf("movieId should win: %+v", records[0])
			}
			if records[1].SubjectID != "200" {
				t.Errorf("tmdbId fallback should apply: %+v", records[1])
			}
		})

		t.Run("Series Normalize tvSeriesId", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/showbookmarks/tvseries/u1" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode([]map[string]string{
					{"_id": "b3", "tvSeriesId": "300", "tmdbId": "999"},
				})
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			records, err := catalog.Bookmarks(context.Background(), sess, models.Series)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if records[0].SubjectID != "300" {
				t.Errorf("tvSeriesId should win over tmdbId: %+v", records[0])
			}
			if records[0].MediaType != models.Series {
				t.Errorf("expected series media type, got %s", records[0].MediaType)
			}
		})
	})

	t.Run("AddBookmark", func(t *testing.T) {
		t.Run("Created", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/addmoviebookmark/movie" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				var body addMovieRequest
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.UserID != "u1" || body.MovieID != "100" || body.TMDBID != "100" {
					t.Errorf("unexpected payload: %+v", body)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			if err := catalog.AddBookmark(context.Background(), sess, "100", models.Movie); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Series Payload", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/addtvseriesbookmark/tvseries" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				var body addSeriesRequest
				json.NewDecoder(r.Body).Decode(&body)
				if body.TVSeriesID != "300" {
					t.Errorf("unexpected payload: %+v", body)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			if err := catalog.AddBookmark(context.Background(), sess, "300", models.Series); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Server Error Payload", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Bookmark already exists"})
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			err := catalog.AddBookmark(context.Background(), sess, "100", models.Movie)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Message != "Bookmark already exists" {
				t.Errorf("expected server error message, got %q", apiErr.Message)
			}
		})
	})

	t.Run("RemoveBookmark", func(t *testing.T) {
		t.Run("OK", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE, got %s", r.Method)
				}
				if r.URL.Path != "/api/deletemoviebookmark/movie/u1/b1" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			if err := catalog.RemoveBookmark(context.Background(), sess, "b1", models.Movie); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("Series Path", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/deletebookmark/tvseries/u1/b3" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			catalog := NewCatalogService(srv.URL, nil)
			if err := catalog.RemoveBookmark(context.Background(), sess, "b3", models.Series); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Profile", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				if r.URL.Path != "/api/profile/t1" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(models.Profile{FullName: "Dom Cobb", Email: "dom@example.com"})
			case http.MethodPut:
				if r.URL.Path != "/api/saveProfile/t1" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				var p models.Profile
				json.NewDecoder(r.Body).Decode(&p)
				json.NewEncoder(w).Encode(p)
			}
		}))
		defer srv.Close()

		catalog := NewCatalogService(srv.URL, nil)

		profile, err := catalog.Profile(context.Background(), sess)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile.FullName != "Dom Cobb" {
			t.Errorf("unexpected profile: %+v", profile)
		}

		profile.FullName = "Arthur"
		saved, err := catalog.SaveProfile(context.Background(), sess, profile)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if saved.FullName != "Arthur" {
			t.Errorf("unexpected saved profile: %+v", saved)
		}
	})
}
