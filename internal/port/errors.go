package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrPlatformNotSupported = errors.New("metrics provider not implemented for platform")
	ErrMissingAPIKey        = errors.New("API key is not configured")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrStreamNotFound       = errors.New("stream not found")
	ErrStreamsDisabled      = errors.New("streams collection is not configured")
)
