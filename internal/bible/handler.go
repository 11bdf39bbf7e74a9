package bible

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bibleapp/bible-prayer-api/pkg/response"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) Handler {
	return Handler{repo: repo}
}

// LookupHandler serves a single verse or a whole chapter:
// GET /api/bible?v=t_kjv&book=1&chapter=1[&verse=3]
func (h *Handler) LookupHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	translation := q.Get("v")
	bookStr := q.Get("book")
	chapterStr := q.Get("chapter")
	verseStr := q.Get("verse")

	if translation == "" || bookStr == "" || chapterStr == "" {
		response.Error(w, http.StatusBadRequest, "Missing required parameters")
		return
	}
	if !ValidTranslation(translation) {
		response.Error(w, http.StatusBadRequest, "Unknown translation")
		return
	}

	book, err := strconv.Atoi(bookStr)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid book")
		return
	}
	chapter, err := strconv.Atoi(chapterStr)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid chapter")
		return
	}

	if verseStr != "" {
		verse, err := strconv.Atoi(verseStr)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid verse")
			return
		}

		v, err := h.repo.GetVerse(r.Context(), translation, book, chapter, verse)
		switch {
		case errors.Is(err, ErrVerseNotFound):
			response.Error(w, http.StatusNotFound, "Verse not found")
			return
		case err != nil:
			log.Printf("verse lookup error: %v", err)
			response.Error(w, http.StatusInternalServerError, "Server error")
			return
		}

		response.JSON(w, http.StatusOK, map[string]interface{}{
			"book":    book,
			"chapter": chapter,
			"verse":   verse,
			"version": translation,
			"verses":  []Verse{*v},
		})
		return
	}

	verses, err := h.repo.GetChapter(r.Context(), translation, book, chapter)
	if err != nil {
		log.Printf("chapter lookup error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if verses == nil {
		verses = []Verse{}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"book":    book,
		"chapter": chapter,
		"verse":   "all",
		"version": translation,
		"verses":  verses,
	})
}

// SearchHandler scans one translation for verses containing a word:
// GET /api/bible/search?v=t_cn&word=xxx
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	translation := q.Get("v")
	word := q.Get("word")

	if translation == "" || word == "" {
		response.Error(w, http.StatusBadRequest, "Missing required parameters")
		return
	}
	if !ValidTranslation(translation) {
		response.Error(w, http.StatusBadRequest, "Unknown translation")
		return
	}

	results, err := h.repo.Search(r.Context(), translation, word)
	if err != nil {
		log.Printf("verse search error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if results == nil {
		results = []SearchResult{}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"verses": results})
}
