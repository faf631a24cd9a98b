package dto

import (
	"github.com/vidora-app/vidora_backend/internal/core/domain"
)

// UserResponse is the principal: the public-safe representation of a user.
// Credential fields never appear here.
type UserResponse struct {
	UserID        string `json:"userID"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	AvatarURL     string `json:"avatarURL"`
	CoverImageURL string `json:"coverImageURL"`
}

// ToUserResponse strips a domain user down to its principal.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		CoverImageURL: user.CoverImageURL,
	}
}

// ToUserResponses maps a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
