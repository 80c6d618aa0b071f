package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/go-build-in-public/internal/adapter/store"
	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
	"github.com/arturoeanton/go-build-in-public/internal/service"
)

// stubProvider reports a fixed subscriber count for any account.
type stubProvider struct{}

func (stubProvider) PlatformName() string { return "stub" }

func (stubProvider) GetMetrics(ctx context.Context, accountID string) (*domain.SocialMetrics, error) {
	n := 42
	return &domain.SocialMetrics{Subscribers: &n}, nil
}

func stubFactory(platform string) (port.MetricsProvider, error) {
	return stubProvider{}, nil
}

func failingFactory(platform string) (port.MetricsProvider, error) {
	return nil, errors.New("no providers configured")
}

func newSyncApp(svc *service.SyncService) *fiber.App {
	app := fiber.New()
	h := NewSyncHandler(svc)
	app.Get("/api/cron", h.Run)
	app.Get("/api/v1/sync/status", h.Status)
	return app
}

func TestSyncRun(t *testing.T) {
	svc := service.NewSyncService(store.NewLocalStore(), stubFactory, nil, nil)
	app := newSyncApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cron", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		Report  service.SyncReport `json:"report"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.True(t, body.Success)
	assert.Equal(t, "sync complete", body.Message)
	// The seeded local store has two projects with a platform account.
	assert.Equal(t, 2, body.Report.ProjectsSynced)
	assert.Equal(t, 2, body.Report.MetricsWritten)
	assert.Zero(t, body.Report.Failures)
}

func TestSyncStatusBeforeAnyRun(t *testing.T) {
	svc := service.NewSyncService(store.NewLocalStore(), stubFactory, nil, nil)
	app := newSyncApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSyncStatusAfterRun(t *testing.T) {
	svc := service.NewSyncService(store.NewLocalStore(), stubFactory, nil, nil)
	app := newSyncApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cron", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status RunStatus
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &status))

	assert.True(t, status.Success)
	require.NotNil(t, status.Report)
	assert.False(t, status.StartedAt.IsZero())
	assert.False(t, status.FinishedAt.Before(status.StartedAt))
}

func TestSyncRunPartialFailureStillSucceeds(t *testing.T) {
	svc := service.NewSyncService(store.NewLocalStore(), failingFactory, nil, nil)
	app := newSyncApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/cron", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode,
		"per-project failures are counters, not a failed run")

	var body struct {
		Success bool               `json:"success"`
		Report  service.SyncReport `json:"report"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Report.Failures)
	assert.Zero(t, body.Report.ProjectsSynced)
}
