package dto

import "io"

// RegisterUserRequest carries the multipart form fields of a registration.
// The avatar and cover image files travel separately as MediaUpload values.
type RegisterUserRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Username string `form:"username" binding:"required,min=3,username"`
	Password string `form:"password" binding:"required,min=8"`
}

// LoginRequest accepts either the username or the email in the identity field.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token when it is not sent as a cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest re-verifies the old password before replacing it.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdateUserDetailsRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserDetailsRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// MediaUpload is an uploaded file ready to be stored remotely.
type MediaUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// ListParams defines limit/offset query parameters for list endpoints.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
