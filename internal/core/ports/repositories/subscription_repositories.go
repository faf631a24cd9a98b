package repositories

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data
type SubscriptionReader interface {
	// FindSubscription returns the subscription linking subscriberID to
	// channelID, or apperrors.ErrNotFound.
	FindSubscription(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error)

	// ListChannelSubscribers returns the public profiles of everyone
	// subscribed to channelID.
	ListChannelSubscribers(ctx context.Context, channelID string, limit, offset int) ([]domain.User, error)

	// ListSubscribedChannels returns the public profiles of the channels
	// subscriberID follows.
	ListSubscribedChannels(ctx context.Context, subscriberID string, limit, offset int) ([]domain.User, error)

	// GetChannelProfile aggregates the channel owner's profile with subscriber
	// counts and whether viewerID is subscribed.
	GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
}

// SubscriptionWriter defines write operations for subscription data
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, sub domain.Subscription) error

	// DeleteSubscription removes the (subscriber, channel) link.
	DeleteSubscription(ctx context.Context, subscriberID, channelID string) error
}

// SubscriptionRepositoryFacade combines all subscription repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
