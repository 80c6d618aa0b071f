// Package store provides DataStore implementations: the hosted Notion
// document store used in production and an in-memory store for local
// development.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

const (
	notionAPIBase = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"
)

// Property names of the store's collection schemas.
const (
	propName      = "name"
	propType      = "type"
	propStatus    = "status"
	propPlatform  = "platform"
	propAccountID = "Platform Account ID"
	propLink      = "Link"
	propAmount    = "amount"
	propValue     = "value"
	propProjects  = "projects"

	propVideoID      = "Video ID"
	propStartTime    = "Start Time"
	propEndTime      = "End Time"
	propThumbnail    = "Thumbnail"
	propViewCount    = "View Count"
	propLikeCount    = "Like Count"
	propCommentCount = "Comment Count"
	propDuration     = "Duration"
	propCommits      = "Commits"
)

// Collections holds the store's collection (database) ids. Streams may be
// empty, which disables the streams feature.
type Collections struct {
	Projects string
	Revenue  string
	Costs    string
	Metrics  string
	Streams  string
}

// NotionStore speaks the hosted document store's HTTP API. It owns both
// the read-side translation into domain entities and the two
// reconciliation upserts.
type NotionStore struct {
	token       string
	baseURL     string
	httpClient  *http.Client
	collections Collections
}

// NewNotionStore creates a store client for the given collections.
func NewNotionStore(token string, collections Collections) *NotionStore {
	return &NotionStore{
		token:       token,
		baseURL:     notionAPIBase,
		httpClient:  &http.Client{},
		collections: collections,
	}
}

// StreamsEnabled reports whether a streams collection is configured.
func (s *NotionStore) StreamsEnabled() bool {
	return s.collections.Streams != ""
}

// queryAll runs a collection query, following pagination cursors until
// exhausted. A positive limit caps the number of returned pages.
func (s *NotionStore) queryAll(ctx context.Context, collectionID string, filter map[string]any, sorts []map[string]any, limit int) ([]page, error) {
	var pages []page
	var cursor string

	for {
		body := map[string]any{"page_size": 100}
		if limit > 0 && limit < 100 {
			body["page_size"] = limit
		}
		if filter != nil {
			body["filter"] = filter
		}
		if sorts != nil {
			body["sorts"] = sorts
		}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		var result struct {
			Results    []page `json:"results"`
			HasMore    bool   `json:"has_more"`
			NextCursor string `json:"next_cursor"`
		}
		path := fmt.Sprintf("/databases/%s/query", collectionID)
		if err := s.do(ctx, http.MethodPost, path, body, &result); err != nil {
			return nil, err
		}

		pages = append(pages, result.Results...)
		if limit > 0 && len(pages) >= limit {
			return pages[:limit], nil
		}
		if !result.HasMore || result.NextCursor == "" {
			return pages, nil
		}
		cursor = result.NextCursor
	}
}

// createPage creates an entry in a collection.
func (s *NotionStore) createPage(ctx context.Context, collectionID string, properties map[string]any) error {
	body := map[string]any{
		"parent":     map[string]any{"database_id": collectionID},
		"properties": properties,
	}
	return s.do(ctx, http.MethodPost, "/pages", body, nil)
}

// updatePage patches an existing entry's properties in place.
func (s *NotionStore) updatePage(ctx context.Context, pageID string, properties map[string]any) error {
	body := map[string]any{"properties": properties}
	return s.do(ctx, http.MethodPatch, "/pages/"+pageID, body, nil)
}

// do issues one store API call and decodes the response into out when given.
func (s *NotionStore) do(ctx context.Context, method, path string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("notion: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notion: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notion: %s %s failed (%d): %s", method, path, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: decode response: %w", err)
	}
	return nil
}

// --- query filter builders ---

func filterAnd(filters ...map[string]any) map[string]any {
	return map[string]any{"and": filters}
}

func filterSelectEquals(property, value string) map[string]any {
	return map[string]any{
		"property": property,
		"select":   map[string]any{"equals": value},
	}
}

func filterTitleEquals(property, value string) map[string]any {
	return map[string]any{
		"property": property,
		"title":    map[string]any{"equals": value},
	}
}

func filterRichTextEquals(property, value string) map[string]any {
	return map[string]any{
		"property":  property,
		"rich_text": map[string]any{"equals": value},
	}
}

func filterRelationContains(property, id string) map[string]any {
	return map[string]any{
		"property": property,
		"relation": map[string]any{"contains": id},
	}
}

func sortDescending(property string) []map[string]any {
	return []map[string]any{
		{"property": property, "direction": "descending"},
	}
}
