package friend

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bibleapp/bible-prayer-api/internal/database"
)

var (
	ErrAlreadyFriends  = errors.New("already friends")
	ErrRequestNotFound = errors.New("friend request not found")
)

type Repository interface {
	EdgeExists(ctx context.Context, userID, friendID int) (bool, error)
	CreateEdge(ctx context.Context, userID, friendID int) error
	GetEdge(ctx context.Context, edgeID int) (*Edge, error)
	UpdateStatus(ctx context.Context, edgeID int, status string) error
	IncomingRequests(ctx context.Context, userID int) ([]Request, error)
	ListFriends(ctx context.Context, userID int) ([]Profile, error)
	RemoveFriend(ctx context.Context, userID, friendID int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

// EdgeExists checks only the exact ordered (user, friend) pair, matching
// the historical behavior. A reverse-direction edge does not block a new
// request.
func (r *repository) EdgeExists(ctx context.Context, userID, friendID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM friends WHERE user_id = $1 AND friend_id = $2)
	`, userID, friendID).Scan(&exists)
	return exists, err
}

func (r *repository) CreateEdge(ctx context.Context, userID, friendID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO friends (user_id, friend_id, status) VALUES ($1, $2, $3)
	`, userID, friendID, StatusPending)
	return err
}

func (r *repository) GetEdge(ctx context.Context, edgeID int) (*Edge, error) {
	var e Edge
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, friend_id, status, created_at FROM friends WHERE id = $1
	`, edgeID).Scan(&e.ID, &e.UserID, &e.FriendID, &e.Status, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) UpdateStatus(ctx context.Context, edgeID int, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE friends SET status = $1 WHERE id = $2
	`, status, edgeID)
	return err
}

func (r *repository) IncomingRequests(ctx context.Context, userID int) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, u.id, u.username, u.avatar
		FROM friends f
		JOIN users u ON f.user_id = u.id
		WHERE f.friend_id = $1 AND f.status = $2
		ORDER BY f.created_at DESC
	`, userID, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.UserID, &req.Username, &req.Avatar); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ListFriends returns accepted friendships in either direction, so a
// friendship is visible to both parties whichever side initiated it.
func (r *repository) ListFriends(ctx context.Context, userID int) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.avatar
		FROM friends f
		JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE (f.user_id = $1 OR f.friend_id = $1) AND f.status = $2
		ORDER BY u.username
	`, userID, StatusAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.Avatar); err != nil {
			return nil, err
		}
		friends = append(friends, p)
	}
	return friends, rows.Err()
}

// RemoveFriend deletes the edge in both directions.
func (r *repository) RemoveFriend(ctx context.Context, userID, friendID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`, userID, friendID)
	return err
}
