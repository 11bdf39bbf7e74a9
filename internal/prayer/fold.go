package prayer

// foldRows groups the flat join result by prayer id and rebuilds the nested
// shape. Scalar fields come from the first row of each group; every row
// whose verse text resolved contributes one entry to Verses. Input order is
// creation-time descending and the output keeps each prayer at its first
// occurrence, so the listing order survives the fold.
func foldRows(rows []row) []Prayer {
	prayers := make([]Prayer, 0, len(rows))
	index := make(map[int]int)

	for _, r := range rows {
		i, seen := index[r.ID]
		if !seen {
			prayers = append(prayers, Prayer{
				ID:        r.ID,
				Title:     r.Title,
				Content:   r.Content,
				IsPrivate: r.IsPrivate,
				CreatedAt: r.CreatedAt,
				Username:  r.Username,
				Verses:    []VerseRef{},
			})
			i = len(prayers) - 1
			index[r.ID] = i
		}

		if r.Text.Valid {
			prayers[i].Verses = append(prayers[i].Verses, VerseRef{
				Translation: r.Translation.String,
				Book:        int(r.Book.Int64),
				Chapter:     int(r.Chapter.Int64),
				Verse:       int(r.Verse.Int64),
				Text:        r.Text.String,
			})
		}
	}

	return prayers
}
