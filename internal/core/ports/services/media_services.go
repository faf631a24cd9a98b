package services

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/dto"
)

// MediaStorage stores uploaded media binaries remotely and returns a public URL.
// Failures surface as apperrors.ErrUpload to the caller.
type MediaStorage interface {
	// Store writes the object under the given folder (e.g. "avatars") and
	// returns the URL where it is served from.
	Store(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error)
}

// ChannelProfileCache caches aggregated channel profiles. Implementations must
// degrade gracefully: a cache outage is never an error on the read path.
type ChannelProfileCache interface {
	// GetChannelProfile returns the cached JSON payload, or false on miss.
	GetChannelProfile(ctx context.Context, username, viewerID string) ([]byte, bool)

	// SetChannelProfile stores the payload with the configured TTL.
	SetChannelProfile(ctx context.Context, username, viewerID string, payload []byte)

	// InvalidateChannel drops every cached profile view of the channel.
	InvalidateChannel(ctx context.Context, username string)
}
