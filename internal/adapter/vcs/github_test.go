package vcs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubCommitSource_CommitsInWindow(t *testing.T) {
	start := time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 17, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello/commits", r.URL.Path)
		assert.Equal(t, "2024-05-02T14:00:00Z", r.URL.Query().Get("since"))
		assert.Equal(t, "2024-05-02T17:00:00Z", r.URL.Query().Get("until"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		fmt.Fprint(w, `[
			{
				"sha":"abc123",
				"commit":{"message":"add feature","author":{"name":"Octo Cat","date":"2024-05-02T15:30:00Z"}},
				"author":{"login":"octocat"},
				"html_url":"https://github.com/octocat/hello/commit/abc123"
			},
			{
				"sha":"def456",
				"commit":{"message":"fix bug","author":{"name":"","date":"2024-05-02T16:00:00Z"}},
				"author":{"login":"octocat"},
				"html_url":"https://github.com/octocat/hello/commit/def456"
			}
		]`)
	}))
	defer server.Close()

	src := NewGitHubCommitSource("test-token")
	src.baseURL = server.URL

	commits, err := src.CommitsInWindow(context.Background(), "octocat/hello", start, end)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "abc123", commits[0].SHA)
	assert.Equal(t, "add feature", commits[0].Message)
	assert.Equal(t, "Octo Cat", commits[0].Author)
	assert.Equal(t, time.Date(2024, 5, 2, 15, 30, 0, 0, time.UTC), commits[0].Timestamp)
	assert.Equal(t, "https://github.com/octocat/hello/commit/abc123", commits[0].HTMLURL)

	assert.Equal(t, "octocat", commits[1].Author, "falls back to the login when the commit author name is blank")
}

func TestGitHubCommitSource_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	src := NewGitHubCommitSource("")
	src.baseURL = server.URL

	commits, err := src.CommitsInWindow(context.Background(), "octocat/hello", time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestGitHubCommitSource_EmptyRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	src := NewGitHubCommitSource("test-token")
	src.baseURL = server.URL

	commits, err := src.CommitsInWindow(context.Background(), "octocat/empty", time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err, "an empty repository is a valid empty window")
	assert.Nil(t, commits)
}

func TestGitHubCommitSource_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer server.Close()

	src := NewGitHubCommitSource("test-token")
	src.baseURL = server.URL

	_, err := src.CommitsInWindow(context.Background(), "octocat/missing", time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "octocat/missing")
}
