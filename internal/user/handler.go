package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bibleapp/bible-prayer-api/internal/auth"
	"github.com/bibleapp/bible-prayer-api/pkg/response"
)

// maxAvatarSize caps avatar uploads at 5 MB.
const maxAvatarSize = 5 << 20

type Handler struct {
	service  Service
	mediaDir string
	baseURL  string
}

func NewHandler(service Service, mediaDir, baseURL string) Handler {
	return Handler{service: service, mediaDir: mediaDir, baseURL: baseURL}
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Printf("registration error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "User registered successfully")
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	u, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Printf("login error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	u, err := h.service.Me(r.Context(), userID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		log.Printf("error fetching user %d: %v", userID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{"user": u})
}

func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Username == nil && req.Avatar == nil && req.Language == nil &&
		req.Email == nil && req.NewPassword == nil {
		response.Error(w, http.StatusBadRequest, "No fields to update")
		return
	}

	err := h.service.UpdateProfile(r.Context(), userID, req)
	switch {
	case errors.Is(err, ErrWrongPassword):
		response.Error(w, http.StatusForbidden, err.Error())
		return
	case errors.Is(err, ErrEmailTaken):
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		log.Printf("error updating user %d: %v", userID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Profile updated successfully")
}

func (h *Handler) ReadingProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ReadingProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Book == 0 || req.Chapter == 0 {
		response.Error(w, http.StatusBadRequest, "Missing book or chapter")
		return
	}

	if err := h.service.UpdateReadingProgress(r.Context(), userID, req.Book, req.Chapter); err != nil {
		log.Printf("error updating reading progress for user %d: %v", userID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.Message(w, "Reading progress updated")
}

// AvatarHandler stores the uploaded file under the media dir keyed by user
// id and original extension, then writes the public URL to the profile.
func (h *Handler) AvatarHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No file attached")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".png"
	}

	dir := filepath.Join(h.mediaDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("error creating avatar dir: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	filename := fmt.Sprintf("%d%s", userID, ext)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		log.Printf("error creating avatar file: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("error writing avatar file: %v", err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	avatarURL := fmt.Sprintf("%s/media/avatars/%s", h.baseURL, filename)
	if err := h.service.UpdateAvatar(r.Context(), userID, avatarURL); err != nil {
		log.Printf("error saving avatar for user %d: %v", userID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"message": "Avatar uploaded successfully",
		"avatar":  avatarURL,
	})
}

// PublicProfileHandler is unauthenticated: basic profile plus public prayers.
func (h *Handler) PublicProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	u, prayers, err := h.service.PublicProfile(r.Context(), userID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		log.Printf("error fetching public profile %d: %v", userID, err)
		response.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"user":          u,
		"publicPrayers": prayers,
	})
}
