package services

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
)

// SubscriptionSvcFacade manages channel subscriptions and their read models.
type SubscriptionSvcFacade interface {
	// ToggleSubscription subscribes subscriberID to channelID, or unsubscribes
	// when a subscription already exists. Returns true when subscribed after
	// the call.
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)

	// ListChannelSubscribers returns the subscribers of a channel.
	ListChannelSubscribers(ctx context.Context, channelID string, limit, offset int) ([]domain.User, error)

	// ListSubscribedChannels returns the channels a user follows.
	ListSubscribedChannels(ctx context.Context, subscriberID string, limit, offset int) ([]domain.User, error)
}
