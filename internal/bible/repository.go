package bible

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bibleapp/bible-prayer-api/internal/database"
)

var (
	ErrUnknownTranslation = errors.New("unknown translation")
	ErrVerseNotFound      = errors.New("verse not found")
)

type Repository interface {
	GetChapter(ctx context.Context, translation string, book, chapter int) ([]Verse, error)
	GetVerse(ctx context.Context, translation string, book, chapter, verse int) (*Verse, error)
	Search(ctx context.Context, translation, word string) ([]SearchResult, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

// The translation code selects the physical table, so it is spliced into the
// SQL text. Callers must only pass codes that survived ValidTranslation;
// every method re-checks before building the query.

func (r *repository) GetChapter(ctx context.Context, translation string, book, chapter int) ([]Verse, error) {
	if !ValidTranslation(translation) {
		return nil, ErrUnknownTranslation
	}

	query := fmt.Sprintf(`SELECT v, t FROM %s WHERE b = $1 AND c = $2 ORDER BY v`, translation)
	rows, err := r.db.QueryContext(ctx, query, book, chapter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verses []Verse
	for rows.Next() {
		var v Verse
		if err := rows.Scan(&v.Verse, &v.Text); err != nil {
			return nil, err
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

func (r *repository) GetVerse(ctx context.Context, translation string, book, chapter, verse int) (*Verse, error) {
	if !ValidTranslation(translation) {
		return nil, ErrUnknownTranslation
	}

	query := fmt.Sprintf(`SELECT v, t FROM %s WHERE b = $1 AND c = $2 AND v = $3`, translation)

	var v Verse
	err := r.db.QueryRowContext(ctx, query, book, chapter, verse).Scan(&v.Verse, &v.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVerseNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) Search(ctx context.Context, translation, word string) ([]SearchResult, error) {
	if !ValidTranslation(translation) {
		return nil, ErrUnknownTranslation
	}

	query := fmt.Sprintf(`
		SELECT b, c, v, t
		FROM %s
		WHERE t LIKE $1
		ORDER BY b, c, v
	`, translation)

	rows, err := r.db.QueryContext(ctx, query, "%"+word+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		res := SearchResult{Translation: translation}
		if err := rows.Scan(&res.Book, &res.Chapter, &res.Verse, &res.Text); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
