package prayer

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRow(id int, title string, created time.Time) row {
	return row{
		ID:        id,
		Title:     title,
		Content:   "content",
		CreatedAt: created,
		Username:  "alice",
	}
}

func withVerse(r row, translation string, b, c, v int, text string) row {
	r.Translation = sql.NullString{String: translation, Valid: true}
	r.Book = sql.NullInt64{Int64: int64(b), Valid: true}
	r.Chapter = sql.NullInt64{Int64: int64(c), Valid: true}
	r.Verse = sql.NullInt64{Int64: int64(v), Valid: true}
	r.Text = sql.NullString{String: text, Valid: true}
	return r
}

func TestFoldRows_GroupsByPrayerID(t *testing.T) {
	now := time.Now()
	rows := []row{
		withVerse(flatRow(2, "second", now), "t_kjv", 1, 1, 1, "In the beginning"),
		withVerse(flatRow(2, "second", now), "t_cn", 43, 3, 16, "神爱世人"),
		withVerse(flatRow(1, "first", now.Add(-time.Hour)), "t_kjv", 19, 23, 1, "The LORD is my shepherd"),
	}

	prayers := foldRows(rows)

	require.Len(t, prayers, 2)
	assert.Equal(t, 2, prayers[0].ID)
	assert.Len(t, prayers[0].Verses, 2)
	assert.Equal(t, 1, prayers[1].ID)
	assert.Len(t, prayers[1].Verses, 1)
	assert.Equal(t, "In the beginning", prayers[0].Verses[0].Text)
	assert.Equal(t, "t_cn", prayers[0].Verses[1].Translation)
}

func TestFoldRows_PreservesInputOrder(t *testing.T) {
	now := time.Now()
	rows := []row{
		flatRow(9, "newest", now),
		flatRow(4, "middle", now.Add(-time.Minute)),
		flatRow(7, "oldest", now.Add(-time.Hour)),
	}

	prayers := foldRows(rows)

	require.Len(t, prayers, 3)
	assert.Equal(t, []int{9, 4, 7}, []int{prayers[0].ID, prayers[1].ID, prayers[2].ID})
}

func TestFoldRows_NoVerseRowYieldsEmptyList(t *testing.T) {
	prayers := foldRows([]row{flatRow(1, "plain", time.Now())})

	require.Len(t, prayers, 1)
	assert.NotNil(t, prayers[0].Verses)
	assert.Empty(t, prayers[0].Verses)
}

func TestFoldRows_FirstRowWinsForScalars(t *testing.T) {
	now := time.Now()
	first := withVerse(flatRow(1, "title", now), "t_kjv", 1, 1, 1, "one")
	second := withVerse(flatRow(1, "title", now), "t_kjv", 1, 1, 2, "two")
	second.Username = "should-not-overwrite"

	prayers := foldRows([]row{first, second})

	require.Len(t, prayers, 1)
	assert.Equal(t, "alice", prayers[0].Username)
	assert.Len(t, prayers[0].Verses, 2)
}

func TestFoldRows_Empty(t *testing.T) {
	assert.Empty(t, foldRows(nil))
}
