package friend

import (
	"encoding/json"
	"errors"
	"fmt"
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

func (h *Handler) AddHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.FriendID == 0 {
		response.Error(w, http.StatusBadRequest, "Friend ID is required")
		return
	}

	err := h.service.Add(r.Context(), userID, req.FriendID)
	switch {
	case errors.Is(err, ErrSelfFriend):
		response.Error(w, http.StatusBadRequest, "Cannot add yourself as a friend")
		return
	case errors.Is(err, ErrAlreadyFriends):
		response.Error(w, http.StatusBadRequest, "Already friends")
		return
	case err != nil:
		log.Printf("error adding friend: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Friend request sent!")
}

func (h *Handler) RequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requests, err := h.service.Requests(r.Context(), userID)
	if err != nil {
		log.Printf("error fetching friend requests: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if requests == nil {
		requests = []Request{}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"friendRequests": requests})
}

func (h *Handler) RespondHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	err := h.service.Respond(r.Context(), userID, req.FriendshipID, req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		response.Error(w, http.StatusBadRequest, "Invalid status")
		return
	case errors.Is(err, ErrRequestNotFound):
		response.Error(w, http.StatusNotFound, "Friend request not found")
		return
	case errors.Is(err, ErrNotTarget):
		response.Error(w, http.StatusForbidden, "You cannot respond to this request")
		return
	case err != nil:
		log.Printf("error responding to friend request: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, fmt.Sprintf("Friend request %s!", req.Status))
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	friends, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Printf("error fetching friends: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if friends == nil {
		friends = []Profile{}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

func (h *Handler) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	friendID, err := strconv.Atoi(chi.URLParam(r, "friendID"))
	if err != nil || friendID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	if err := h.service.Remove(r.Context(), userID, friendID); err != nil {
		log.Printf("error removing friend: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Friend removed")
}
