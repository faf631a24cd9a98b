package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         NewUserRepository(dbPool),
		SubscriptionRepo: NewSubscriptionRepository(dbPool),
		VideoRepo:        NewVideoRepository(dbPool),
	}
}
