package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*SubscriptionRepository)(nil)

func (r *SubscriptionRepository) FindSubscription(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	query := `
        SELECT subscription_id, subscriber_id, channel_id, created_at
        FROM subscriptions
        WHERE subscriber_id = $1 AND channel_id = $2;
    `
	var sub domain.Subscription
	err := r.db.QueryRow(ctx, query, subscriberID, channelID).Scan(
		&sub.SubscriptionID,
		&sub.SubscriberID,
		&sub.ChannelID,
		&sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return &sub, nil
}

func (r *SubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
        INSERT INTO subscriptions (subscription_id, subscriber_id, channel_id, created_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.db.Exec(ctx, query, sub.SubscriptionID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("subscription already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, channelID string) error {
	query := `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, subscriberID, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepository) ListChannelSubscribers(ctx context.Context, channelID string, limit, offset int) ([]domain.User, error) {
	query := `
        SELECT u.user_id, u.username, u.email, u.full_name, u.password_hash, u.refresh_token,
               u.avatar_url, u.cover_image_url, u.created_at, u.updated_at
        FROM subscriptions s
        JOIN users u ON u.user_id = s.subscriber_id
        WHERE s.channel_id = $1
        ORDER BY s.created_at DESC
        LIMIT $2 OFFSET $3;
    `
	return r.listUsers(ctx, query, channelID, limit, offset)
}

func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string, limit, offset int) ([]domain.User, error) {
	query := `
        SELECT u.user_id, u.username, u.email, u.full_name, u.password_hash, u.refresh_token,
               u.avatar_url, u.cover_image_url, u.created_at, u.updated_at
        FROM subscriptions s
        JOIN users u ON u.user_id = s.channel_id
        WHERE s.subscriber_id = $1
        ORDER BY s.created_at DESC
        LIMIT $2 OFFSET $3;
    `
	return r.listUsers(ctx, query, subscriberID, limit, offset)
}

func (r *SubscriptionRepository) listUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscription users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.UserID,
			&user.Username,
			&user.Email,
			&user.FullName,
			&user.PasswordHash,
			&user.RefreshToken,
			&user.AvatarURL,
			&user.CoverImageURL,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscription user rows: %w", err)
	}
	return users, nil
}

// GetChannelProfile resolves the public channel view in a single round trip:
// the channel row plus subscriber counts and whether viewerID already
// subscribes. An empty viewerID never matches, so IsSubscribed stays false
// for anonymous viewers.
func (r *SubscriptionRepository) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	query := `
        SELECT u.user_id, u.username, u.full_name, u.avatar_url, u.cover_image_url,
               (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.user_id)    AS subscriber_count,
               (SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id) AS subscribed_to_count,
               EXISTS(
                   SELECT 1 FROM subscriptions s
                   WHERE s.channel_id = u.user_id AND s.subscriber_id = $2
               ) AS is_subscribed
        FROM users u
        WHERE u.username = $1;
    `
	var profile domain.ChannelProfile
	err := r.db.QueryRow(ctx, query, username, viewerID).Scan(
		&profile.UserID,
		&profile.Username,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscriberCount,
		&profile.SubscribedToCount,
		&profile.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	return &profile, nil
}
