package domain

// User represents a registered channel owner/viewer in the domain.
//
// PasswordHash and RefreshToken are credential/session state and must never be
// serialized across the trust boundary; handlers return dto.UserResponse instead.
type User struct {
	UserID   string `json:"userID"` // Primary Key (UUID)
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`

	// Credential state. Never included in API responses.
	PasswordHash string `json:"-"`

	// The single currently-valid refresh token for this user, empty when logged out.
	// Issuing a new one invalidates the previous one.
	RefreshToken string `json:"-"`

	// Profile media, stored remotely; only the URLs live on the record.
	AvatarURL     string `json:"avatarURL"`
	CoverImageURL string `json:"coverImageURL"`

	Timestamps
}
