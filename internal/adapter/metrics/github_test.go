package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubProvider_GetMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo", r.URL.Path)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Write([]byte(`{"stargazers_count":1234,"forks_count":56}`))
	}))
	defer server.Close()

	p := NewGitHubProvider("test-token")
	p.baseURL = server.URL

	m, err := p.GetMetrics(context.Background(), "owner/repo")
	require.NoError(t, err)
	require.NotNil(t, m.Stars)
	assert.Equal(t, 1234, *m.Stars)
	require.NotNil(t, m.Forks)
	assert.Equal(t, 56, *m.Forks)
	assert.Nil(t, m.Subscribers)
}

func TestGitHubProvider_NoTokenOmitsAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"stargazers_count":1,"forks_count":0}`))
	}))
	defer server.Close()

	p := NewGitHubProvider("")
	p.baseURL = server.URL

	_, err := p.GetMetrics(context.Background(), "owner/repo")
	require.NoError(t, err)
}

func TestGitHubProvider_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := NewGitHubProvider("")
	p.baseURL = server.URL

	_, err := p.GetMetrics(context.Background(), "owner/gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
