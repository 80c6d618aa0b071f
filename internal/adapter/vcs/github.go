// Package vcs provides source-control platform clients.
package vcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
)

const githubAPIBase = "https://api.github.com"

// GitHubCommitSource lists a repository's commits inside a time window via
// the GitHub REST API.
type GitHubCommitSource struct {
	token      string // optional bearer token
	baseURL    string
	httpClient *http.Client
}

// NewGitHubCommitSource creates a new GitHub commit source.
func NewGitHubCommitSource(token string) *GitHubCommitSource {
	return &GitHubCommitSource{
		token:      token,
		baseURL:    githubAPIBase,
		httpClient: &http.Client{},
	}
}

// CommitsInWindow returns the commits of an "owner/repo" repository whose
// timestamps fall inside [start, end], in the order the API returns them.
// A 409 response (empty repository, no default branch) is a valid empty
// result, not an error.
func (s *GitHubCommitSource) CommitsInWindow(ctx context.Context, repo string, start, end time.Time) ([]domain.StreamCommit, error) {
	params := url.Values{
		"since":    {start.UTC().Format(time.RFC3339)},
		"until":    {end.UTC().Format(time.RFC3339)},
		"per_page": {"100"},
	}
	reqURL := fmt.Sprintf("%s/repos/%s/commits?%s", s.baseURL, repo, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: fetch commits: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github: commits for %s failed (%d): %s", repo, resp.StatusCode, string(body))
	}

	var items []struct {
		SHA    string `json:"sha"`
		Commit struct {
			Message string `json:"message"`
			Author  struct {
				Name string    `json:"name"`
				Date time.Time `json:"date"`
			} `json:"author"`
		} `json:"commit"`
		Author *struct {
			Login string `json:"login"`
		} `json:"author"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("github: decode commits: %w", err)
	}

	commits := make([]domain.StreamCommit, 0, len(items))
	for _, item := range items {
		author := item.Commit.Author.Name
		if author == "" && item.Author != nil {
			author = item.Author.Login
		}
		commits = append(commits, domain.StreamCommit{
			SHA:       item.SHA,
			Message:   item.Commit.Message,
			Author:    author,
			Timestamp: item.Commit.Author.Date,
			HTMLURL:   item.HTMLURL,
		})
	}
	return commits, nil
}
