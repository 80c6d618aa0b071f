// Package streams discovers completed live streams on video platforms.
package streams

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
)

const (
	youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

	// videoBatchSize is the YouTube API limit on ids per videos.list call.
	videoBatchSize = 50
)

// YouTubeSource discovers a channel's completed live streams through the
// YouTube Data API: it resolves the channel's uploads playlist, pages
// through it newest-first until the watermark, then batch-fetches video
// details and keeps only items with a completed live-streaming block.
//
// The watermark cutoff stops paging at the first item strictly older than
// since, which relies on the uploads playlist being ordered newest-first.
type YouTubeSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeSource creates a new YouTube stream source.
func NewYouTubeSource(apiKey string) *YouTubeSource {
	return &YouTubeSource{
		apiKey:     apiKey,
		baseURL:    youtubeAPIBase,
		httpClient: &http.Client{},
	}
}

// CompletedStreams returns the channel's completed streams published at or
// after since. A zero since fetches the full upload history.
func (s *YouTubeSource) CompletedStreams(ctx context.Context, channelID string, since time.Time) ([]domain.Stream, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("youtube: %w", port.ErrMissingAPIKey)
	}

	playlistID, err := s.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	videoIDs, err := s.playlistVideoIDs(ctx, playlistID, since)
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return nil, nil
	}

	return s.streamDetails(ctx, videoIDs)
}

// uploadsPlaylistID resolves the channel's canonical "all uploads" playlist.
func (s *YouTubeSource) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	params := url.Values{
		"part": {"contentDetails"},
		"id":   {channelID},
		"key":  {s.apiKey},
	}

	var data struct {
		Items []struct {
			ContentDetails struct {
				RelatedPlaylists struct {
					Uploads string `json:"uploads"`
				} `json:"relatedPlaylists"`
			} `json:"contentDetails"`
		} `json:"items"`
	}
	if err := s.get(ctx, "/channels", params, &data); err != nil {
		return "", err
	}
	if len(data.Items) == 0 {
		return "", fmt.Errorf("youtube: %w: %s", port.ErrChannelNotFound, channelID)
	}
	return data.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// playlistVideoIDs pages through the uploads playlist newest-first and
// accumulates video ids, stopping as soon as an item older than since is
// seen rather than merely skipping it.
func (s *YouTubeSource) playlistVideoIDs(ctx context.Context, playlistID string, since time.Time) ([]string, error) {
	var videoIDs []string
	var pageToken string

	for {
		params := url.Values{
			"part":       {"snippet"},
			"playlistId": {playlistID},
			"maxResults": {"50"},
			"key":        {s.apiKey},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var data struct {
			NextPageToken string `json:"nextPageToken"`
			Items         []struct {
				Snippet struct {
					PublishedAt time.Time `json:"publishedAt"`
					ResourceID  struct {
						VideoID string `json:"videoId"`
					} `json:"resourceId"`
				} `json:"snippet"`
			} `json:"items"`
		}
		if err := s.get(ctx, "/playlistItems", params, &data); err != nil {
			return nil, err
		}

		hitSince := false
		for _, item := range data.Items {
			if !since.IsZero() && !item.Snippet.PublishedAt.IsZero() && item.Snippet.PublishedAt.Before(since) {
				hitSince = true
				break
			}
			if id := item.Snippet.ResourceID.VideoID; id != "" {
				videoIDs = append(videoIDs, id)
			}
		}

		if hitSince || data.NextPageToken == "" {
			break
		}
		pageToken = data.NextPageToken
	}

	return videoIDs, nil
}

// streamDetails fetches full video details in batches and keeps only items
// whose live-streaming block carries both actual start and end times;
// anything else is an ordinary upload, not a stream.
func (s *YouTubeSource) streamDetails(ctx context.Context, videoIDs []string) ([]domain.Stream, error) {
	var streams []domain.Stream

	for i := 0; i < len(videoIDs); i += videoBatchSize {
		batch := videoIDs[i:min(i+videoBatchSize, len(videoIDs))]

		params := url.Values{
			"part": {"liveStreamingDetails,snippet,statistics,contentDetails"},
			"id":   {strings.Join(batch, ",")},
			"key":  {s.apiKey},
		}

		var data struct {
			Items []struct {
				ID                   string `json:"id"`
				LiveStreamingDetails *struct {
					ActualStartTime time.Time `json:"actualStartTime"`
					ActualEndTime   time.Time `json:"actualEndTime"`
				} `json:"liveStreamingDetails"`
				Snippet struct {
					Title      string `json:"title"`
					Thumbnails struct {
						Maxres *struct {
							URL string `json:"url"`
						} `json:"maxres"`
						High *struct {
							URL string `json:"url"`
						} `json:"high"`
					} `json:"thumbnails"`
				} `json:"snippet"`
				Statistics struct {
					ViewCount    string `json:"viewCount"`
					LikeCount    string `json:"likeCount"`
					CommentCount string `json:"commentCount"`
				} `json:"statistics"`
				ContentDetails struct {
					Duration string `json:"duration"`
				} `json:"contentDetails"`
			} `json:"items"`
		}
		if err := s.get(ctx, "/videos", params, &data); err != nil {
			return nil, err
		}

		for _, item := range data.Items {
			lsd := item.LiveStreamingDetails
			if lsd == nil || lsd.ActualStartTime.IsZero() || lsd.ActualEndTime.IsZero() {
				continue
			}

			thumbnail := ""
			if item.Snippet.Thumbnails.Maxres != nil {
				thumbnail = item.Snippet.Thumbnails.Maxres.URL
			} else if item.Snippet.Thumbnails.High != nil {
				thumbnail = item.Snippet.Thumbnails.High.URL
			}

			streams = append(streams, domain.Stream{
				VideoID:         item.ID,
				Name:            item.Snippet.Title,
				ActualStartTime: lsd.ActualStartTime,
				ActualEndTime:   lsd.ActualEndTime,
				ThumbnailURL:    thumbnail,
				ViewCount:       parseCount(item.Statistics.ViewCount),
				LikeCount:       parseCount(item.Statistics.LikeCount),
				CommentCount:    parseCount(item.Statistics.CommentCount),
				Duration:        item.ContentDetails.Duration,
			})
		}
	}

	return streams, nil
}

// get issues one API call and decodes the response into out.
func (s *YouTubeSource) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("youtube: create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("youtube: fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("youtube: %s failed (%d): %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("youtube: decode %s: %w", path, err)
	}
	return nil
}

// parseCount coerces a numeric-as-text API field to an int, defaulting to zero.
func parseCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
