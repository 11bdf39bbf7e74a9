package prayer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bibleapp/bible-prayer-api/internal/database"
)

var (
	ErrPrayerNotFound  = errors.New("prayer not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("not the owner")
	ErrAlreadyLiked    = errors.New("already liked")
)

type Repository interface {
	Create(ctx context.Context, userID int, title, content string, isPrivate bool, verses []VerseRef) (int, error)
	ListVisible(ctx context.Context, userID int) ([]Prayer, error)
	ListMine(ctx context.Context, userID int) ([]Prayer, error)
	ListPublic(ctx context.Context) ([]Prayer, error)
	ListByAuthor(ctx context.Context, authorID int) ([]Prayer, error)
	Update(ctx context.Context, prayerID, userID int, title, content string, isPrivate bool, verses []VerseRef) error
	Delete(ctx context.Context, prayerID, userID int) error
	GetOwner(ctx context.Context, prayerID int) (int, error)

	Like(ctx context.Context, prayerID, userID int) error
	Unlike(ctx context.Context, prayerID, userID int) error
	LikeCount(ctx context.Context, prayerID int) (int, error)
	IsLiked(ctx context.Context, prayerID, userID int) (bool, error)

	CreateComment(ctx context.Context, prayerID, userID int, content string) error
	ListComments(ctx context.Context, prayerID int) ([]Comment, error)
	GetComment(ctx context.Context, prayerID, commentID int) (*Comment, error)
	UpdateComment(ctx context.Context, commentID int, content string) error
	DeleteComment(ctx context.Context, commentID int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

// insertVerseRefs bulk-inserts a prayer's refs inside the owning
// transaction, one bound statement per ref.
func insertVerseRefs(ctx context.Context, tx *sql.Tx, prayerID int, verses []VerseRef) error {
	query := `
		INSERT INTO prayer_bible (prayer_id, translation, book, chapter, verse)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, v := range verses {
		if _, err := tx.ExecContext(ctx, query, prayerID, v.Translation, v.Book, v.Chapter, v.Verse); err != nil {
			return fmt.Errorf("failed to insert verse ref: %w", err)
		}
	}
	return nil
}

func (r *repository) Create(ctx context.Context, userID int, title, content string, isPrivate bool, verses []VerseRef) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var prayerID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO prayers (user_id, title, content, is_private)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, title, content, isPrivate).Scan(&prayerID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert prayer: %w", err)
	}

	if err := insertVerseRefs(ctx, tx, prayerID, verses); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return prayerID, nil
}

// listQuery joins prayers with their author and resolves each verse ref
// against a union view over every translation table, so refs pointing at
// different translations all come back with text.
const listQuery = `
	SELECT p.id, p.title, p.content, p.is_private, p.created_at, u.username,
	       pb.translation, pb.book, pb.chapter, pb.verse, b.t AS verse_text
	FROM prayers p
	JOIN users u ON p.user_id = u.id
	LEFT JOIN prayer_bible pb ON p.id = pb.prayer_id
	LEFT JOIN (
		SELECT 't_kjv' AS translation, b, c, v, t FROM t_kjv
		UNION ALL
		SELECT 't_cn', b, c, v, t FROM t_cn
	) b ON pb.translation = b.translation AND pb.book = b.b AND pb.chapter = b.c AND pb.verse = b.v
`

func (r *repository) queryPrayers(ctx context.Context, where string, args ...interface{}) ([]Prayer, error) {
	query := listQuery + where + ` ORDER BY p.created_at DESC, p.id`

	dbRows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var rows []row
	for dbRows.Next() {
		var rw row
		err := dbRows.Scan(&rw.ID, &rw.Title, &rw.Content, &rw.IsPrivate, &rw.CreatedAt,
			&rw.Username, &rw.Translation, &rw.Book, &rw.Chapter, &rw.Verse, &rw.Text)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rw)
	}
	if err := dbRows.Err(); err != nil {
		return nil, err
	}

	return foldRows(rows), nil
}

func (r *repository) ListVisible(ctx context.Context, userID int) ([]Prayer, error) {
	return r.queryPrayers(ctx, `WHERE p.is_private = FALSE OR p.user_id = $1`, userID)
}

func (r *repository) ListMine(ctx context.Context, userID int) ([]Prayer, error) {
	return r.queryPrayers(ctx, `WHERE p.user_id = $1`, userID)
}

func (r *repository) ListPublic(ctx context.Context) ([]Prayer, error) {
	return r.queryPrayers(ctx, `WHERE p.is_private = FALSE`)
}

func (r *repository) ListByAuthor(ctx context.Context, authorID int) ([]Prayer, error) {
	return r.queryPrayers(ctx, `WHERE p.user_id = $1 AND p.is_private = FALSE`, authorID)
}

func (r *repository) GetOwner(ctx context.Context, prayerID int) (int, error) {
	var ownerID int
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM prayers WHERE id = $1`, prayerID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPrayerNotFound
		}
		return 0, err
	}
	return ownerID, nil
}

// ownedTx loads the prayer's owner inside tx and enforces ownership before
// any write happens.
func ownedTx(ctx context.Context, tx *sql.Tx, prayerID, userID int) error {
	var ownerID int
	err := tx.QueryRowContext(ctx, `SELECT user_id FROM prayers WHERE id = $1`, prayerID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPrayerNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrNotOwner
	}
	return nil
}

// Update replaces the scalar fields and the whole verse-ref set in one
// transaction.
func (r *repository) Update(ctx context.Context, prayerID, userID int, title, content string, isPrivate bool, verses []VerseRef) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ownedTx(ctx, tx, prayerID, userID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE prayers SET title = $1, content = $2, is_private = $3 WHERE id = $4
	`, title, content, isPrivate, prayerID)
	if err != nil {
		return fmt.Errorf("failed to update prayer: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM prayer_bible WHERE prayer_id = $1`, prayerID); err != nil {
		return fmt.Errorf("failed to clear verse refs: %w", err)
	}

	if err := insertVerseRefs(ctx, tx, prayerID, verses); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes the verse refs first, then the prayer row, in one
// transaction.
func (r *repository) Delete(ctx context.Context, prayerID, userID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ownedTx(ctx, tx, prayerID, userID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM prayer_bible WHERE prayer_id = $1`, prayerID); err != nil {
		return fmt.Errorf("failed to delete verse refs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM prayers WHERE id = $1`, prayerID); err != nil {
		return fmt.Errorf("failed to delete prayer: %w", err)
	}

	return tx.Commit()
}

func (r *repository) Like(ctx context.Context, prayerID, userID int) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM prayer_likes WHERE prayer_id = $1 AND user_id = $2)
	`, prayerID, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyLiked
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO prayer_likes (prayer_id, user_id) VALUES ($1, $2)
	`, prayerID, userID)
	return err
}

// Unlike is a no-op when no like exists.
func (r *repository) Unlike(ctx context.Context, prayerID, userID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM prayer_likes WHERE prayer_id = $1 AND user_id = $2
	`, prayerID, userID)
	return err
}

func (r *repository) LikeCount(ctx context.Context, prayerID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM prayer_likes WHERE prayer_id = $1
	`, prayerID).Scan(&count)
	return count, err
}

func (r *repository) IsLiked(ctx context.Context, prayerID, userID int) (bool, error) {
	var liked bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM prayer_likes WHERE prayer_id = $1 AND user_id = $2)
	`, prayerID, userID).Scan(&liked)
	return liked, err
}

func (r *repository) CreateComment(ctx context.Context, prayerID, userID int, content string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prayer_comments (prayer_id, user_id, content) VALUES ($1, $2, $3)
	`, prayerID, userID, content)
	return err
}

func (r *repository) ListComments(ctx context.Context, prayerID int) ([]Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.prayer_id, c.user_id, c.content, c.created_at, u.username, u.avatar
		FROM prayer_comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.prayer_id = $1
		ORDER BY c.created_at ASC
	`, prayerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.PrayerID, &c.UserID, &c.Content, &c.CreatedAt, &c.Username, &c.Avatar)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *repository) GetComment(ctx context.Context, prayerID, commentID int) (*Comment, error) {
	var c Comment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, prayer_id, user_id, content, created_at
		FROM prayer_comments
		WHERE id = $1 AND prayer_id = $2
	`, commentID, prayerID).Scan(&c.ID, &c.PrayerID, &c.UserID, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) UpdateComment(ctx context.Context, commentID int, content string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE prayer_comments SET content = $1 WHERE id = $2
	`, content, commentID)
	return err
}

func (r *repository) DeleteComment(ctx context.Context, commentID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM prayer_comments WHERE id = $1
	`, commentID)
	return err
}
