package dto

import (
	"github.com/vidora-app/vidora_backend/internal/core/domain"
)

// CreateVideoRequest registers metadata for an already-uploaded video file.
// The thumbnail travels separately as a MediaUpload.
type CreateVideoRequest struct {
	Title           string  `form:"title" binding:"required"`
	Description     string  `form:"description" binding:"required"`
	VideoFileURL    string  `form:"videoFileURL" binding:"required,url"`
	DurationSeconds float64 `form:"durationSeconds" binding:"required,gt=0"`
	IsPublished     bool    `form:"isPublished"`
}

// VideoResponse is the API shape of a video metadata record.
type VideoResponse struct {
	VideoID         string  `json:"videoID"`
	OwnerID         string  `json:"ownerID"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	VideoFileURL    string  `json:"videoFileURL"`
	ThumbnailURL    string  `json:"thumbnailURL"`
	DurationSeconds float64 `json:"durationSeconds"`
	Views           int64   `json:"views"`
	IsPublished     bool    `json:"isPublished"`
}

// ToVideoResponse maps a domain video to its API shape.
func ToVideoResponse(v *domain.Video) VideoResponse {
	return VideoResponse{
		VideoID:         v.VideoID,
		OwnerID:         v.OwnerID,
		Title:           v.Title,
		Description:     v.Description,
		VideoFileURL:    v.VideoFileURL,
		ThumbnailURL:    v.ThumbnailURL,
		DurationSeconds: v.DurationSeconds,
		Views:           v.Views,
		IsPublished:     v.IsPublished,
	}
}

// ListVideosResponse wraps a page of videos.
type ListVideosResponse struct {
	Videos []VideoResponse `json:"videos"`
}

// WatchHistoryItem is one entry of a user's watch history.
type WatchHistoryItem struct {
	Video         VideoResponse `json:"video"`
	OwnerUsername string        `json:"ownerUsername"`
	OwnerFullName string        `json:"ownerFullName"`
	OwnerAvatar   string        `json:"ownerAvatar"`
	WatchedAt     string        `json:"watchedAt"`
}

// WatchHistoryResponse wraps a user's watch history page.
type WatchHistoryResponse struct {
	History []WatchHistoryItem `json:"history"`
}
