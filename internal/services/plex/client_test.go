package plex_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"themesync/internal/services"
	"themesync/internal/services/plex"
)

const sectionsJSON = `{"MediaContainer":{"Directory":[
	{"key":"2","title":"TV Shows","type":"show"},
	{"key":"1","title":"Movies","type":"movie"}
]}}`

const moviesJSON = `{"MediaContainer":{"Metadata":[
	{"ratingKey":"101","title":"Alien","year":1979,"theme":"/library/metadata/101/theme/123",
	 "Media":[{"Part":[{"file":"/data/movies/Alien (1979)/Alien.mkv"}]}]},
	{"ratingKey":"102","title":"Undated","summary":"no year here",
	 "Media":[{"Part":[{"file":"/data/movies/Undated/Undated.mkv"}]}]}
]}}`

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *plex.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, plex.NewClient(srv.URL, "token", srv.Client())
}

func TestMoviesListsLibrary(t *testing.T) {
	var sawToken string
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		sawToken = r.Header.Get("X-Plex-Token")
		switch r.URL.Path {
		case "/library/sections":
			_, _ = w.Write([]byte(sectionsJSON))
		case "/library/sections/1/all":
			_, _ = w.Write([]byte(moviesJSON))
		default:
			http.NotFound(w, r)
		}
	})

	movies, err := client.Movies(context.Background(), "movies")
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}
	if sawToken != "token" {
		t.Fatalf("token header = %q", sawToken)
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies", len(movies))
	}
	if movies[0].Year != "1979" || movies[0].FilePath != "/data/movies/Alien (1979)/Alien.mkv" {
		t.Fatalf("unexpected first movie: %+v", movies[0])
	}
	if movies[1].Year != "" {
		t.Fatalf("missing year must stay empty, got %q", movies[1].Year)
	}
}

func TestMoviesUnknownLibrary(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sectionsJSON))
	})

	_, err := client.Movies(context.Background(), "Anime")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestMovieByRatingKey(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/library/metadata/101" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"MediaContainer":{"Metadata":[{"ratingKey":"101","title":"Alien","year":1979}]}}`))
	})

	movie, err := client.Movie(context.Background(), "101")
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}
	if movie.Title != "Alien" || movie.Year != "1979" {
		t.Fatalf("unexpected movie: %+v", movie)
	}
}

func TestMovieMissing(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"MediaContainer":{}}`))
	})

	if _, err := client.Movie(context.Background(), "999"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRefreshUsesPut(t *testing.T) {
	var method, path string
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
	})

	if err := client.Refresh(context.Background(), "101"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if method != http.MethodPut || path != "/library/metadata/101/refresh" {
		t.Fatalf("got %s %s", method, path)
	}
}

func TestUnauthorizedIsConfigurationError(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Movies(context.Background(), "Movies")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
