package domain

import "time"

// Video is the metadata record for a hosted video. The binary itself lives in
// remote storage; VideoFileURL and ThumbnailURL point at it.
type Video struct {
	VideoID         string  `json:"videoID"`
	OwnerID         string  `json:"ownerID"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	VideoFileURL    string  `json:"videoFileURL"`
	ThumbnailURL    string  `json:"thumbnailURL"`
	DurationSeconds float64 `json:"durationSeconds"`
	Views           int64   `json:"views"`
	IsPublished     bool    `json:"isPublished"`

	Timestamps
}

// WatchHistoryEntry is one watched video in a user's history, joined with the
// video metadata and the owning channel's public fields.
type WatchHistoryEntry struct {
	Video         Video     `json:"video"`
	OwnerUsername string    `json:"ownerUsername"`
	OwnerFullName string    `json:"ownerFullName"`
	OwnerAvatar   string    `json:"ownerAvatar"`
	WatchedAt     time.Time `json:"watchedAt"`
}
