package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when the repository listing cannot be fetched for a
// username: unknown user, rate limit, network failure. The caller treats all
// of these as an absent sub-resource, never as a server fault.
var ErrNotFound = errors.New("github profile not found")

// Repo is the subset of repository fields the profile page displays.
type Repo struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	HTMLURL         string  `json:"html_url"`
	Description     *string `json:"description"`
	StargazersCount int     `json:"stargazers_count"`
	WatchersCount   int     `json:"watchers_count"`
	ForksCount      int     `json:"forks_count"`
}

// Client fetches a user's public repositories from the GitHub REST API.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewClient creates a GitHub client. baseURL is normally
// https://api.github.com; tests point it at a local server.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ListRepos returns up to five of the user's repositories, oldest-created
// first, along with the raw response payload for caching.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, []byte, error) {
	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build repos request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failure is indistinguishable from an unknown user as far
		// as the profile page is concerned.
		return nil, nil, ErrNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, ErrNotFound
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, ErrNotFound
	}

	repos, err := Decode(payload)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	return repos, payload, nil
}

// Decode parses a repository-listing payload.
func Decode(payload []byte) ([]Repo, error) {
	var repos []Repo
	if err := json.Unmarshal(payload, &repos); err != nil {
		return nil, fmt.Errorf("decode repos payload: %w", err)
	}
	return repos, nil
}
