package port

import (
	"context"
	"time"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
)

// MetricsProvider fetches normalized social metrics for one platform.
// Implementations perform exactly one upstream call pattern and fail with
// an error rather than silently returning defaults.
type MetricsProvider interface {
	// PlatformName returns the platform identifier (e.g. "youtube").
	PlatformName() string

	// GetMetrics fetches the current metrics for an external account id.
	GetMetrics(ctx context.Context, accountID string) (*domain.SocialMetrics, error)
}

// MetricsProviderFactory resolves a platform identifier to a provider.
// Unknown platforms yield ErrPlatformNotSupported; callers must treat that
// as a per-project recoverable failure.
type MetricsProviderFactory func(platform string) (MetricsProvider, error)

// StreamSource lists a channel's completed live streams. A zero since
// value requests the full history; otherwise only streams published at or
// after the watermark are returned.
type StreamSource interface {
	CompletedStreams(ctx context.Context, channelID string, since time.Time) ([]domain.Stream, error)
}

// CommitSource lists commits for a repository inside a time window.
// An empty repository is a valid empty result, not an error. Returned
// commits carry no repo/project tags; the caller attaches them.
type CommitSource interface {
	CommitsInWindow(ctx context.Context, repo string, start, end time.Time) ([]domain.StreamCommit, error)
}
