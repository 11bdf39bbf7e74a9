package prayer

import (
	"database/sql"
	"time"
)

// Prayer is the nested shape every listing returns: one object per prayer
// with its verse refs resolved to scripture text.
type Prayer struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	IsPrivate bool       `json:"is_private"`
	CreatedAt time.Time  `json:"created_at"`
	Username  string     `json:"username"`
	Verses    []VerseRef `json:"verses"`
}

// VerseRef links a prayer to one verse of one translation. Text is filled
// at read time by joining the translation view; it is never stored.
type VerseRef struct {
	Translation string `json:"version"`
	Book        int    `json:"b"`
	Chapter     int    `json:"c"`
	Verse       int    `json:"v"`
	Text        string `json:"text,omitempty"`
}

type Comment struct {
	ID        int       `json:"id"`
	PrayerID  int       `json:"prayer_id"`
	UserID    int       `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
}

// SaveRequest covers create and update. Pointer fields distinguish
// "absent" from zero values: all four are required.
type SaveRequest struct {
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	IsPrivate *bool       `json:"is_private"`
	Verses    *[]VerseRef `json:"verses"`
}

// Valid reports whether every required field is present.
func (r SaveRequest) Valid() bool {
	return r.Title != "" && r.Content != "" && r.IsPrivate != nil && r.Verses != nil
}

type CommentRequest struct {
	Content string `json:"content"`
}

// row is one flat record of the listing join, before folding. The verse
// columns are nullable: a prayer with no refs still yields one row.
type row struct {
	ID          int
	Title       string
	Content     string
	IsPrivate   bool
	CreatedAt   time.Time
	Username    string
	Translation sql.NullString
	Book        sql.NullInt64
	Chapter     sql.NullInt64
	Verse       sql.NullInt64
	Text        sql.NullString
}
