package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
)

const npmAPIBase = "https://api.npmjs.org"

// NPMProvider fetches package download counts from the npm registry API.
type NPMProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewNPMProvider creates a new npm metrics provider.
func NewNPMProvider() *NPMProvider {
	return &NPMProvider{
		baseURL:    npmAPIBase,
		httpClient: &http.Client{},
	}
}

// PlatformName returns "npm".
func (p *NPMProvider) PlatformName() string {
	return domain.PlatformNPM
}

// GetMetrics fetches rolling 30-day and 7-day download counts for a
// package. The two window queries run concurrently; either one failing
// fails the whole fetch.
func (p *NPMProvider) GetMetrics(ctx context.Context, accountID string) (*domain.SocialMetrics, error) {
	type result struct {
		downloads int
		err       error
	}

	monthlyCh := make(chan result, 1)
	weeklyCh := make(chan result, 1)

	go func() {
		n, err := p.downloadsPoint(ctx, "last-month", accountID)
		monthlyCh <- result{n, err}
	}()
	go func() {
		n, err := p.downloadsPoint(ctx, "last-week", accountID)
		weeklyCh <- result{n, err}
	}()

	monthly := <-monthlyCh
	weekly := <-weeklyCh
	if monthly.err != nil {
		return nil, monthly.err
	}
	if weekly.err != nil {
		return nil, weekly.err
	}

	return &domain.SocialMetrics{
		Downloads:       &monthly.downloads,
		WeeklyDownloads: &weekly.downloads,
	}, nil
}

// downloadsPoint queries one rolling download window for a package.
func (p *NPMProvider) downloadsPoint(ctx context.Context, window, pkg string) (int, error) {
	reqURL := fmt.Sprintf("%s/downloads/point/%s/%s", p.baseURL, window, pkg)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("npm: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("npm: fetch downloads: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("npm: downloads %s failed (%d): %s", window, resp.StatusCode, string(body))
	}

	var data struct {
		Downloads int `json:"downloads"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("npm: decode downloads: %w", err)
	}
	return data.Downloads, nil
}
