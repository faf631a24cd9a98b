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

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure UserRepository implements the facade
var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

const userColumns = `user_id, username, email, full_name, password_hash, refresh_token, avatar_url, cover_image_url, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.RefreshToken,
		user.AvatarURL,
		user.CoverImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("username or email already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *UserRepository) FindUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1;`
	return scanUser(r.db.QueryRow(ctx, query, usernameOrEmail))
}

func (r *UserRepository) UpdateUserDetails(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET full_name = $1, email = $2, updated_at = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, user.FullName, user.Email, user.UpdatedAt, user.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("email already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user details: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	return r.updateColumn(ctx, "avatar_url", userID, avatarURL)
}

func (r *UserRepository) UpdateCoverImageURL(ctx context.Context, userID, coverImageURL string) error {
	return r.updateColumn(ctx, "cover_image_url", userID, coverImageURL)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return r.updateColumn(ctx, "password_hash", userID, passwordHash)
}

// SetRefreshToken unconditionally replaces the stored refresh token, which is
// exactly the login semantics: any previously issued token stops matching.
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID, token string) error {
	return r.updateColumn(ctx, "refresh_token", userID, token)
}

// RotateRefreshToken is a compare-and-swap on the stored token: the update only
// lands when the stored value still equals oldToken. A zero row count means a
// concurrent rotation (or a logout) won, and the caller must fail closed.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error {
	query := `
        UPDATE users
        SET refresh_token = $1, updated_at = now()
        WHERE user_id = $2 AND refresh_token = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, newToken, userID, oldToken)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("stored refresh token changed concurrently: %w", apperrors.ErrUnauthorized)
	}
	return nil
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	// Idempotent: clearing an already-empty token affects the row all the same.
	return r.updateColumn(ctx, "refresh_token", userID, "")
}

func (r *UserRepository) updateColumn(ctx context.Context, column, userID, value string) error {
	query := fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = now() WHERE user_id = $2;`, column)
	cmdTag, err := r.db.Exec(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
