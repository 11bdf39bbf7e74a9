package friend

import "time"

// Edge statuses. An edge is directed: user_id requested friend_id.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type Edge struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	FriendID  int       `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Request is an incoming pending edge joined with the requester's public
// profile fields.
type Request struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Profile is what friend listings expose about a user.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type AddRequest struct {
	FriendID int `json:"friendId"`
}

type RespondRequest struct {
	FriendshipID int    `json:"friendshipId"`
	Status       string `json:"status"`
}
