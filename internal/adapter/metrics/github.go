package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
)

const githubAPIBase = "https://api.github.com"

// GitHubProvider fetches repository statistics from the GitHub REST API.
type GitHubProvider struct {
	token      string // optional bearer token
	baseURL    string
	httpClient *http.Client
}

// NewGitHubProvider creates a new GitHub metrics provider. The token may be
// empty; unauthenticated requests use the lower anonymous rate limit.
func NewGitHubProvider(token string) *GitHubProvider {
	return &GitHubProvider{
		token:      token,
		baseURL:    githubAPIBase,
		httpClient: &http.Client{},
	}
}

// PlatformName returns "github".
func (p *GitHubProvider) PlatformName() string {
	return domain.PlatformGitHub
}

// GetMetrics fetches star and fork counts for an "owner/repo" identifier.
func (p *GitHubProvider) GetMetrics(ctx context.Context, accountID string) (*domain.SocialMetrics, error) {
	reqURL := fmt.Sprintf("%s/repos/%s", p.baseURL, accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("github: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: fetch repo stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github: repo stats failed (%d): %s", resp.StatusCode, string(body))
	}

	var data struct {
		StargazersCount int `json:"stargazers_count"`
		ForksCount      int `json:"forks_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("github: decode repo stats: %w", err)
	}

	return &domain.SocialMetrics{
		Stars: &data.StargazersCount,
		Forks: &data.ForksCount,
	}, nil
}
