package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bibleapp/bible-prayer-api/internal/database"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already registered")
)

// Repository defines the user account DB operations.
type Repository interface {
	CreateUser(ctx context.Context, username, email, hashedPassword, avatar, language string) (int, error)
	GetUserByID(ctx context.Context, id int) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string, excludeUserID int) (bool, error)
	UpdateProfile(ctx context.Context, userID int, fields map[string]interface{}) error
	UpdateReadingProgress(ctx context.Context, userID, book, chapter int) error
	UpdateAvatar(ctx context.Context, userID int, avatarURL string) error
	GetPublicPrayers(ctx context.Context, userID int) ([]PublicPrayer, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

const userColumns = `id, username, email, password, avatar, language, reading_book, reading_chapter, created_at, updated_at`

func scanUser(row *sql.Row) (*User, error) {
	u := User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Avatar,
		&u.Language, &u.ReadingBook, &u.ReadingChapter, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) CreateUser(ctx context.Context, username, email, hashedPassword, avatar, language string) (int, error) {
	query := `
		INSERT INTO users (username, email, password, avatar, language)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query, username, email, hashedPassword, avatar, language).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *repository) GetUserByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	return exists, err
}

// EmailExists reports whether another account already uses the email.
// excludeUserID skips the caller's own row on profile updates; pass 0 at
// registration.
func (r *repository) EmailExists(ctx context.Context, email string, excludeUserID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	err := r.db.QueryRowContext(ctx, query, email, excludeUserID).Scan(&exists)
	return exists, err
}

// UpdateProfile appends only the supplied fields to the SET clause.
func (r *repository) UpdateProfile(ctx context.Context, userID int, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+1)

	for _, col := range []string{"username", "avatar", "language", "email", "password"} {
		val, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, val)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) UpdateReadingProgress(ctx context.Context, userID, book, chapter int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET reading_book = $1, reading_chapter = $2, updated_at = NOW()
		WHERE id = $3
	`, book, chapter, userID)
	return err
}

func (r *repository) UpdateAvatar(ctx context.Context, userID int, avatarURL string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET avatar = $1, updated_at = NOW()
		WHERE id = $2
	`, avatarURL, userID)
	return err
}

func (r *repository) GetPublicPrayers(ctx context.Context, userID int) ([]PublicPrayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, content, created_at
		FROM prayers
		WHERE user_id = $1 AND is_private = FALSE
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prayers []PublicPrayer
	for rows.Next() {
		var p PublicPrayer
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		prayers = append(prayers, p)
	}
	return prayers, rows.Err()
}
