package services

import (
	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, media portssvc.MediaStorage, cache portssvc.ChannelProfileCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Token service first since the session authority depends on it.
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(cfg, repos.UserRepo, container.Token, media)

	container.User = NewUserService(repos.UserRepo, repos.SubscriptionRepo, media, cache)
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.UserRepo, cache)
	container.Video = NewVideoService(repos.VideoRepo, media)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
	_ portssvc.AuthSvcFacade         = (*authService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)
	_ portssvc.VideoSvcFacade        = (*videoService)(nil)
)
