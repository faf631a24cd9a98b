package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
)

type VideoRepository struct {
	db *pgxpool.Pool
}

func NewVideoRepository(db *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{db: db}
}

var _ portsrepo.VideoRepositoryFacade = (*VideoRepository)(nil)

const videoColumns = `video_id, owner_id, title, description, video_file_url, thumbnail_url, duration_seconds, views, is_published, created_at, updated_at`

func scanVideo(row pgx.Row) (*domain.Video, error) {
	var video domain.Video
	err := row.Scan(
		&video.VideoID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoFileURL,
		&video.ThumbnailURL,
		&video.DurationSeconds,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan video row: %w", err)
	}
	return &video, nil
}

func (r *VideoRepository) SaveVideo(ctx context.Context, video domain.Video) error {
	query := `
        INSERT INTO videos (` + videoColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		video.VideoID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoFileURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save video: %w", err)
	}
	return nil
}

func (r *VideoRepository) FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE video_id = $1;`
	return scanVideo(r.db.QueryRow(ctx, query, videoID))
}

// ListVideos returns published videos, newest first. A non-empty ownerID
// narrows the listing to a single channel.
func (r *VideoRepository) ListVideos(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error) {
	query := `
        SELECT ` + videoColumns + `
        FROM videos
        WHERE is_published = TRUE AND ($1 = '' OR owner_id = $1)
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]domain.Video, 0)
	for rows.Next() {
		var video domain.Video
		err := rows.Scan(
			&video.VideoID,
			&video.OwnerID,
			&video.Title,
			&video.Description,
			&video.VideoFileURL,
			&video.ThumbnailURL,
			&video.DurationSeconds,
			&video.Views,
			&video.IsPublished,
			&video.CreatedAt,
			&video.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate video rows: %w", err)
	}
	return videos, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, videoID string) error {
	query := `UPDATE videos SET views = views + 1 WHERE video_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, videoID)
	if err != nil {
		return fmt.Errorf("failed to increment video views: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordWatch upserts on (user_id, video_id) so rewatching a video moves it to
// the top of the history instead of duplicating the entry.
func (r *VideoRepository) RecordWatch(ctx context.Context, userID, videoID string) error {
	query := `
        INSERT INTO watch_history (user_id, video_id, watched_at)
        VALUES ($1, $2, now())
        ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now();
    `
	_, err := r.db.Exec(ctx, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("failed to record watch: %w", err)
	}
	return nil
}

func (r *VideoRepository) ListWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.WatchHistoryEntry, error) {
	query := `
        SELECT v.video_id, v.owner_id, v.title, v.description, v.video_file_url, v.thumbnail_url,
               v.duration_seconds, v.views, v.is_published, v.created_at, v.updated_at,
               u.username, u.full_name, u.avatar_url, h.watched_at
        FROM watch_history h
        JOIN videos v ON v.video_id = h.video_id
        JOIN users u ON u.user_id = v.owner_id
        WHERE h.user_id = $1
        ORDER BY h.watched_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.WatchHistoryEntry, 0)
	for rows.Next() {
		var entry domain.WatchHistoryEntry
		err := rows.Scan(
			&entry.Video.VideoID,
			&entry.Video.OwnerID,
			&entry.Video.Title,
			&entry.Video.Description,
			&entry.Video.VideoFileURL,
			&entry.Video.ThumbnailURL,
			&entry.Video.DurationSeconds,
			&entry.Video.Views,
			&entry.Video.IsPublished,
			&entry.Video.CreatedAt,
			&entry.Video.UpdatedAt,
			&entry.OwnerUsername,
			&entry.OwnerFullName,
			&entry.OwnerAvatar,
			&entry.WatchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watch history rows: %w", err)
	}
	return entries, nil
}
