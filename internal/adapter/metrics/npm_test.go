package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPMProvider_GetMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/downloads/point/last-month/my-pkg":
			w.Write([]byte(`{"downloads":48210,"package":"my-pkg"}`))
		case "/downloads/point/last-week/my-pkg":
			w.Write([]byte(`{"downloads":11801,"package":"my-pkg"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	p := NewNPMProvider()
	p.baseURL = server.URL

	m, err := p.GetMetrics(context.Background(), "my-pkg")
	require.NoError(t, err)
	require.NotNil(t, m.Downloads)
	assert.Equal(t, 48210, *m.Downloads)
	require.NotNil(t, m.WeeklyDownloads)
	assert.Equal(t, 11801, *m.WeeklyDownloads)
	assert.Nil(t, m.Views)
}

func TestNPMProvider_EitherWindowFailing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/downloads/point/last-week/my-pkg" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"downloads":100}`))
	}))
	defer server.Close()

	p := NewNPMProvider()
	p.baseURL = server.URL

	_, err := p.GetMetrics(context.Background(), "my-pkg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
