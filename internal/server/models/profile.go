package models

import "time"

// ProfileAsset links a user to a picture stored on the filesystem. At most
// one row exists per user.
type ProfileAsset struct {
	UserID    int64
	Path      string
	CreatedAt time.Time
}

// Profile is the combined view of a user record and its picture. Picture is
// nil when no asset exists and then serializes as JSON null; otherwise it is
// base64 encoded.
type Profile struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Picture  []byte `json:"profile_picture"`
}

// NewProfile assembles the view from a user and optional picture content.
func NewProfile(u *User, picture []byte) *Profile {
	return &Profile{
		UserID:   u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Picture:  picture,
	}
}
