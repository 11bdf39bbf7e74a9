package prayer

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bibleapp/bible-prayer-api/internal/auth"
	"github.com/bibleapp/bible-prayer-api/pkg/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return Handler{service: service}
}

func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil && id > 0
}

// writeListing normalises a listing result onto the wire.
func writeListing(w http.ResponseWriter, prayers []Prayer, err error) {
	if err != nil {
		log.Printf("error fetching prayers: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if prayers == nil {
		prayers = []Prayer{}
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"prayers": prayers})
}

func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized: Invalid user")
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !req.Valid() {
		response.Error(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	prayerID, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Printf("error inserting prayer: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Prayer submitted",
		"prayerId": prayerID,
	})
}

func (h *Handler) ListVisibleHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prayers, err := h.service.ListVisible(r.Context(), userID)
	writeListing(w, prayers, err)
}

func (h *Handler) ListMineHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prayers, err := h.service.ListMine(r.Context(), userID)
	writeListing(w, prayers, err)
}

func (h *Handler) ListPublicHandler(w http.ResponseWriter, r *http.Request) {
	prayers, err := h.service.ListPublic(r.Context())
	writeListing(w, prayers, err)
}

func (h *Handler) ListByAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, ok := urlID(r, "userID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	prayers, err := h.service.ListByAuthor(r.Context(), authorID)
	writeListing(w, prayers, err)
}

func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !req.Valid() {
		response.Error(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	err := h.service.Update(r.Context(), prayerID, userID, req)
	switch {
	case errors.Is(err, ErrPrayerNotFound):
		response.Error(w, http.StatusNotFound, "Prayer not found")
		return
	case errors.Is(err, ErrNotOwner):
		response.Error(w, http.StatusForbidden, "You can only edit your own prayer")
		return
	case err != nil:
		log.Printf("error updating prayer %d: %v", prayerID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Prayer updated successfully")
}

func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}

	err := h.service.Delete(r.Context(), prayerID, userID)
	switch {
	case errors.Is(err, ErrPrayerNotFound):
		response.Error(w, http.StatusNotFound, "Prayer not found")
		return
	case errors.Is(err, ErrNotOwner):
		response.Error(w, http.StatusForbidden, "You can only delete your own prayer")
		return
	case err != nil:
		log.Printf("error deleting prayer %d: %v", prayerID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Prayer deleted successfully")
}

func (h *Handler) LikeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}

	err := h.service.Like(r.Context(), prayerID, userID)
	switch {
	case errors.Is(err, ErrAlreadyLiked):
		response.Error(w, http.StatusBadRequest, "You have already liked this prayer")
		return
	case err != nil:
		log.Printf("error liking prayer %d: %v", prayerID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Prayer liked successfully!")
}

func (h *Handler) UnlikeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}

	if err := h.service.Unlike(r.Context(), prayerID, userID); err != nil {
		log.Printf("error unliking prayer %d: %v", prayerID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Prayer unliked successfully!")
}

func (h *Handler) LikeCountHandler(w http.ResponseWriter, r *http.Request) {
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}

	count, err := h.service.LikeCount(r.Context(), prayerID)
	if err != nil {
		log.Printf("error counting likes for prayer %d: %v", prayerID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"likeCount": count})
}

func (h *Handler) IsLikedHandler(w http.ResponseWriter, r *http.Request) {
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid parameters")
		return
	}
	userID, ok := urlID(r, "userID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid parameters")
		return
	}

	liked, err := h.service.IsLiked(r.Context(), prayerID, userID)
	if err != nil {
		log.Printf("error checking like status: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func (h *Handler) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Content == "" {
		response.Error(w, http.StatusBadRequest, "Comment content cannot be empty")
		return
	}

	if err := h.service.AddComment(r.Context(), prayerID, userID, req.Content); err != nil {
		log.Printf("error adding comment to prayer %d: %v", prayerID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Comment added successfully!")
}

func (h *Handler) ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}

	comments, err := h.service.ListComments(r.Context(), prayerID)
	if err != nil {
		log.Printf("error fetching comments for prayer %d: %v", prayerID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if comments == nil {
		comments = []Comment{}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

func (h *Handler) EditCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}
	commentID, ok := urlID(r, "commentID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Content == "" {
		response.Error(w, http.StatusBadRequest, "Comment content cannot be empty")
		return
	}

	err := h.service.EditComment(r.Context(), prayerID, commentID, userID, req.Content)
	switch {
	case errors.Is(err, ErrCommentNotFound):
		response.Error(w, http.StatusNotFound, "Comment not found")
		return
	case errors.Is(err, ErrNotOwner):
		response.Error(w, http.StatusForbidden, "You can only edit your own comment")
		return
	case err != nil:
		log.Printf("error updating comment %d: %v", commentID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Comment updated successfully")
}

func (h *Handler) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}
	commentID, ok := urlID(r, "commentID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	err := h.service.DeleteComment(r.Context(), prayerID, commentID, userID)
	switch {
	case errors.Is(err, ErrCommentNotFound):
		response.Error(w, http.StatusNotFound, "Comment not found")
		return
	case errors.Is(err, ErrPrayerNotFound):
		response.Error(w, http.StatusNotFound, "Prayer not found")
		return
	case errors.Is(err, ErrNotOwner):
		response.Error(w, http.StatusForbidden, "You are not allowed to delete this comment")
		return
	case err != nil:
		log.Printf("error deleting comment %d: %v", commentID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Comment deleted successfully")
}

func (h *Handler) CanDeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prayerID, ok := urlID(r, "prayerID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid prayer ID")
		return
	}
	commentID, ok := urlID(r, "commentID")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	canDelete, err := h.service.CanDeleteComment(r.Context(), prayerID, commentID, userID)
	if err != nil {
		log.Printf("error checking comment delete permission: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"canDelete": canDelete})
}
