package metrics

import (
	"fmt"
	"strings"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
)

// NewFactory returns a factory resolving platform identifiers to metrics
// providers. Unrecognized platforms resolve to ErrPlatformNotSupported so
// the caller can skip the project instead of failing the batch.
func NewFactory(youtubeAPIKey, githubToken string) port.MetricsProviderFactory {
	return func(platform string) (port.MetricsProvider, error) {
		switch strings.ToLower(platform) {
		case domain.PlatformYouTube:
			return NewYouTubeProvider(youtubeAPIKey), nil
		case domain.PlatformGitHub:
			return NewGitHubProvider(githubToken), nil
		case domain.PlatformNPM:
			return NewNPMProvider(), nil
		default:
			return nil, fmt.Errorf("%w: %s", port.ErrPlatformNotSupported, platform)
		}
	}
}
