package bible

// Translation codes map one-to-one onto physical verse tables. The set is
// closed: lookups against any other code are rejected before SQL is built.
const (
	TranslationKJV     = "t_kjv"
	TranslationChinese = "t_cn"
)

var translations = map[string]bool{
	TranslationKJV:     true,
	TranslationChinese: true,
}

// ValidTranslation reports whether code names a known verse table.
func ValidTranslation(code string) bool {
	return translations[code]
}

// Verse is one row of a chapter lookup.
type Verse struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// SearchResult is one row of a word search, addressed fully.
type SearchResult struct {
	Translation string `json:"version"`
	Book        int    `json:"b"`
	Chapter     int    `json:"c"`
	Verse       int    `json:"v"`
	Text        string `json:"t"`
}
