package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// YouTubeProvider fetches channel statistics from the YouTube Data API.
type YouTubeProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeProvider creates a new YouTube metrics provider.
func NewYouTubeProvider(apiKey string) *YouTubeProvider {
	return &YouTubeProvider{
		apiKey:     apiKey,
		baseURL:    youtubeAPIBase,
		httpClient: &http.Client{},
	}
}

// PlatformName returns "youtube".
func (p *YouTubeProvider) PlatformName() string {
	return domain.PlatformYouTube
}

// GetMetrics fetches subscriber, view and video counts for a channel.
func (p *YouTubeProvider) GetMetrics(ctx context.Context, accountID string) (*domain.SocialMetrics, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("youtube: %w", port.ErrMissingAPIKey)
	}

	params := url.Values{
		"part": {"statistics"},
		"id":   {accountID},
		"key":  {p.apiKey},
	}
	reqURL := fmt.Sprintf("%s/channels?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: fetch channel stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("youtube: channel stats failed (%d): %s", resp.StatusCode, string(body))
	}

	var data struct {
		Items []struct {
			Statistics struct {
				SubscriberCount string `json:"subscriberCount"`
				ViewCount       string `json:"viewCount"`
				VideoCount      string `json:"videoCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("youtube: decode channel stats: %w", err)
	}
	if len(data.Items) == 0 {
		return nil, fmt.Errorf("youtube: %w: %s", port.ErrChannelNotFound, accountID)
	}

	stats := data.Items[0].Statistics
	subs := parseCount(stats.SubscriberCount)
	views := parseCount(stats.ViewCount)
	videos := parseCount(stats.VideoCount)

	return &domain.SocialMetrics{
		Subscribers: &subs,
		Views:       &views,
		Videos:      &videos,
	}, nil
}

// parseCount coerces a numeric-as-text API field to an int, defaulting to zero.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
