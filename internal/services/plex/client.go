package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"themesync/internal/services"
)

// Movie is the subset of Plex movie metadata themesync reads. Year is empty
// when the server reports none. FilePath is the primary media part location
// as the server sees it; callers remap it before touching disk.
type Movie struct {
	RatingKey     string
	Title         string
	Year          string
	FilePath      string
	Theme         string
	Summary       string
	OriginalTitle string
	SortTitle     string
	Tagline       string
}

// Service defines the media-server operations used by the sync engine and
// the analyzer.
type Service interface {
	Movies(ctx context.Context, library string) ([]Movie, error)
	Movie(ctx context.Context, ratingKey string) (*Movie, error)
	Refresh(ctx context.Context, ratingKey string) error
}

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the Plex HTTP API.
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

var _ Service = (*Client)(nil)

// NewClient constructs a Plex API client. A nil doer falls back to a default
// client with a request timeout.
func NewClient(baseURL, token string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		client:  doer,
	}
}

// Movies lists every movie in the named library section.
func (c *Client) Movies(ctx context.Context, library string) ([]Movie, error) {
	key, err := c.sectionKey(ctx, library)
	if err != nil {
		return nil, err
	}

	var resp containerResponse
	path := fmt.Sprintf("/library/sections/%s/all?type=1", url.PathEscape(key))
	if err := c.doJSONRequest(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}

	movies := make([]Movie, 0, len(resp.MediaContainer.Metadata))
	for _, entry := range resp.MediaContainer.Metadata {
		movies = append(movies, entry.toMovie())
	}
	return movies, nil
}

// Movie fetches a single movie by its stable rating key.
func (c *Client) Movie(ctx context.Context, ratingKey string) (*Movie, error) {
	var resp containerResponse
	path := "/library/metadata/" + url.PathEscape(ratingKey)
	if err := c.doJSONRequest(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	if len(resp.MediaContainer.Metadata) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "plex", "fetch movie", "rating key "+ratingKey, nil)
	}
	movie := resp.MediaContainer.Metadata[0].toMovie()
	return &movie, nil
}

// Refresh asks the server to re-scan metadata for one item.
func (c *Client) Refresh(ctx context.Context, ratingKey string) error {
	path := "/library/metadata/" + url.PathEscape(ratingKey) + "/refresh"
	return c.doJSONRequest(ctx, http.MethodPut, path, nil)
}

func (c *Client) sectionKey(ctx context.Context, library string) (string, error) {
	var resp containerResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/library/sections", &resp); err != nil {
		return "", err
	}
	for _, dir := range resp.MediaContainer.Directory {
		if dir.Type == "movie" && strings.EqualFold(dir.Title, library) {
			return dir.Key, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, "plex", "find library", fmt.Sprintf("no movie library named %q", library), nil)
}

func (c *Client) doJSONRequest(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("plex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return services.Wrap(services.ErrConfiguration, "plex", method+" "+path, "token rejected", nil)
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("plex %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type containerResponse struct {
	MediaContainer struct {
		Directory []directoryEntry `json:"Directory"`
		Metadata  []metadataEntry  `json:"Metadata"`
	} `json:"MediaContainer"`
}

type directoryEntry struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type metadataEntry struct {
	RatingKey     string `json:"ratingKey"`
	Title         string `json:"title"`
	OriginalTitle string `json:"originalTitle"`
	TitleSort     string `json:"titleSort"`
	Summary       string `json:"summary"`
	Tagline       string `json:"tagline"`
	Theme         string `json:"theme"`
	Year          int    `json:"year"`
	Media         []struct {
		Part []struct {
			File string `json:"file"`
		} `json:"Part"`
	} `json:"Media"`
}

func (m metadataEntry) toMovie() Movie {
	movie := Movie{
		RatingKey:     m.RatingKey,
		Title:         m.Title,
		Theme:         m.Theme,
		Summary:       m.Summary,
		OriginalTitle: m.OriginalTitle,
		SortTitle:     m.TitleSort,
		Tagline:       m.Tagline,
	}
	if m.Year > 0 {
		movie.Year = strconv.Itoa(m.Year)
	}
	for _, media := range m.Media {
		for _, part := range media.Part {
			if part.File != "" {
				movie.FilePath = part.File
				return movie
			}
		}
	}
	return movie
}
