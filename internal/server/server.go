package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bibleapp/bible-prayer-api/internal/database"
	"github.com/bibleapp/bible-prayer-api/internal/mail"
	"github.com/bibleapp/bible-prayer-api/pkg/config"
)

type Server struct {
	port    string
	db      database.Service
	cfg     *config.Config
	mail    *mail.Mailer
	handler http.Handler
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config) *Server {
	stats := db.Health()
	if stats["status"] != "up" {
		log.Fatalf("database connection failed: %s", stats["error"])
	}
	log.Println("Database connection successful")

	var mailer *mail.Mailer
	if cfg.SmtpFrom != "" {
		mailer = mail.NewMail(
			cfg.SmtpFrom,
			"Bible Prayer",
			cfg.SmtpPassword,
			cfg.SmtpHost,
			cfg.SmtpPort,
		)
	}

	s := &Server{
		port: cfg.Port,
		db:   db,
		cfg:  cfg,
		mail: mailer,
	}

	s.handler = s.RegisterRoutes()
	return s
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
