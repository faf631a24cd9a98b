package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
)

// subscriptionService implements SubscriptionSvcFacade.
type subscriptionService struct {
	subRepo  portsrepo.SubscriptionRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
	cache    portssvc.ChannelProfileCache
}

// NewSubscriptionService creates a new instance of subscriptionService.
func NewSubscriptionService(subRepo portsrepo.SubscriptionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, cache portssvc.ChannelProfileCache) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

// ToggleSubscription subscribes when no subscription exists and unsubscribes
// when one does. The cached profile of the channel is invalidated either way,
// since its subscriber count just changed.
func (s *subscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == "" || channelID == "" {
		return false, fmt.Errorf("subscriber and channel are required: %w", apperrors.ErrValidation)
	}
	if subscriberID == channelID {
		return false, fmt.Errorf("cannot subscribe to own channel: %w", apperrors.ErrValidation)
	}

	channel, err := s.userRepo.FindUserByID(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("channel lookup failed: %w", err)
	}

	subscribed := false
	existing, err := s.subRepo.FindSubscription(ctx, subscriberID, channelID)
	switch {
	case err == nil && existing != nil:
		if err := s.subRepo.DeleteSubscription(ctx, subscriberID, channelID); err != nil {
			return false, fmt.Errorf("failed to remove subscription: %w", err)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		sub := domain.Subscription{
			SubscriptionID: uuid.NewString(),
			SubscriberID:   subscriberID,
			ChannelID:      channelID,
			CreatedAt:      time.Now(),
		}
		if err := s.subRepo.SaveSubscription(ctx, sub); err != nil {
			return false, fmt.Errorf("failed to create subscription: %w", err)
		}
		subscribed = true
	default:
		return false, fmt.Errorf("subscription lookup failed: %w", err)
	}

	s.cache.InvalidateChannel(ctx, channel.Username)
	return subscribed, nil
}

// ListChannelSubscribers returns the subscribers of a channel.
func (s *subscriptionService) ListChannelSubscribers(ctx context.Context, channelID string, limit, offset int) ([]domain.User, error) {
	if _, err := s.userRepo.FindUserByID(ctx, channelID); err != nil {
		return nil, fmt.Errorf("channel lookup failed: %w", err)
	}
	return s.subRepo.ListChannelSubscribers(ctx, channelID, limit, offset)
}

// ListSubscribedChannels returns the channels a user follows.
func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID string, limit, offset int) ([]domain.User, error) {
	if _, err := s.userRepo.FindUserByID(ctx, subscriberID); err != nil {
		return nil, fmt.Errorf("subscriber lookup failed: %w", err)
	}
	return s.subRepo.ListSubscribedChannels(ctx, subscriberID, limit, offset)
}
