package user

import "time"

type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Avatar         string    `json:"avatar"`
	Language       string    `json:"language"`
	ReadingBook    int       `json:"reading_book"`
	ReadingChapter int       `json:"reading_chapter"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PublicPrayer is the scalar prayer view returned on a public profile.
// Verse resolution lives in the prayer listings, not here.
type PublicPrayer struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is a partial update: nil means "leave unchanged".
// Changing email or password requires CurrentPassword.
type UpdateProfileRequest struct {
	Username        *string `json:"username"`
	Avatar          *string `json:"avatar"`
	Language        *string `json:"language"`
	Email           *string `json:"email"`
	NewPassword     *string `json:"newPassword"`
	CurrentPassword string  `json:"currentPassword"`
}

type ReadingProgressRequest struct {
	Book    int `json:"book"`
	Chapter int `json:"chapter"`
}
