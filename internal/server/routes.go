package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bibleapp/bible-prayer-api/internal/auth"
	"github.com/bibleapp/bible-prayer-api/internal/bible"
	"github.com/bibleapp/bible-prayer-api/internal/friend"
	"github.com/bibleapp/bible-prayer-api/internal/prayer"
	"github.com/bibleapp/bible-prayer-api/internal/user"
	"github.com/bibleapp/bible-prayer-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.healthHandler)

	// Uploaded avatars are public.
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(s.cfg.MediaDir)))
	r.Get("/media/*", fileServer.ServeHTTP)

	requireAuth := auth.Middleware(s.cfg.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		s.loadAuthRoutes(r, requireAuth)
		s.loadBibleRoutes(r)
		s.loadPrayerRoutes(r, requireAuth)
		s.loadFriendRoutes(r, requireAuth)
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.db.Health())
}

func (s *Server) loadAuthRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	repo := user.NewRepository(s.db)
	service := user.NewService(repo, s.mail, s.cfg.JWTSecret)
	handler := user.NewHandler(service, s.cfg.MediaDir, s.cfg.BaseURL)

	router.Post("/auth/register", handler.RegisterHandler)
	router.Post("/auth/login", handler.LoginHandler)
	router.Get("/auth/public/{userID}", handler.PublicProfileHandler)

	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/auth/me", handler.MeHandler)
		r.Post("/auth/update", handler.UpdateProfileHandler)
		r.Post("/auth/reading", handler.ReadingProgressHandler)
		r.Post("/auth/avatar", handler.AvatarHandler)
	})
}

func (s *Server) loadBibleRoutes(router chi.Router) {
	repo := bible.NewRepository(s.db)
	handler := bible.NewHandler(repo)

	router.Get("/bible", handler.LookupHandler)
	router.Get("/bible/search", handler.SearchHandler)
}

func (s *Server) loadPrayerRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	repo := prayer.NewRepository(s.db)
	service := prayer.NewService(repo)
	handler := prayer.NewHandler(service)

	router.Get("/prayers/public", handler.ListPublicHandler)
	router.Get("/prayers/user/{userID}", handler.ListByAuthorHandler)
	router.Get("/prayers/{prayerID}/likes", handler.LikeCountHandler)
	router.Get("/prayers/{prayerID}/liked/{userID}", handler.IsLikedHandler)
	router.Get("/prayers/{prayerID}/comments", handler.ListCommentsHandler)

	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/prayers", handler.CreateHandler)
		r.Get("/prayers", handler.ListVisibleHandler)
		r.Get("/prayers/mine", handler.ListMineHandler)
		r.Put("/prayers/{prayerID}", handler.UpdateHandler)
		r.Delete("/prayers/{prayerID}", handler.DeleteHandler)
		r.Post("/prayers/{prayerID}/like", handler.LikeHandler)
		r.Delete("/prayers/{prayerID}/like", handler.UnlikeHandler)
		r.Post("/prayers/{prayerID}/comments", handler.AddCommentHandler)
		r.Put("/prayers/{prayerID}/comments/{commentID}", handler.EditCommentHandler)
		r.Delete("/prayers/{prayerID}/comments/{commentID}", handler.DeleteCommentHandler)
		r.Get("/prayers/{prayerID}/comments/{commentID}/candelete", handler.CanDeleteCommentHandler)
	})
}

func (s *Server) loadFriendRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	repo := friend.NewRepository(s.db)
	service := friend.NewService(repo)
	handler := friend.NewHandler(service)

	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/friends/add", handler.AddHandler)
		r.Get("/friends/requests", handler.RequestsHandler)
		r.Post("/friends/respond", handler.RespondHandler)
		r.Get("/friends/list", handler.ListHandler)
		r.Delete("/friends/{friendID}", handler.RemoveHandler)
	})
}
