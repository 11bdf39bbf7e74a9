package user

import (
	"context"
	"errors"
	"log"

	"github.com/bibleapp/bible-prayer-api/internal/mail"
	"github.com/bibleapp/bible-prayer-api/pkg/util"
)

const (
	DefaultAvatar   = "/media/default-avatar.png"
	DefaultLanguage = "t_kjv"
)

var (
	// ErrInvalidCredentials is what login callers see for both an unknown
	// email and a wrong password. The logs keep the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWrongPassword means the current password supplied for an
	// email/password change did not match.
	ErrWrongPassword = errors.New("current password is incorrect")
)

type Service struct {
	repo      Repository
	mail      *mail.Mailer
	jwtSecret string
}

func NewService(repo Repository, mailer *mail.Mailer, jwtSecret string) Service {
	return Service{repo: repo, mail: mailer, jwtSecret: jwtSecret}
}

func (s *Service) Register(ctx context.Context, username, email, password string) error {
	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(ctx, email, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.repo.CreateUser(ctx, username, email, hashed, DefaultAvatar, DefaultLanguage)
	if err != nil {
		return err
	}

	if s.mail != nil {
		data := map[string]interface{}{
			"Name":   username,
			"AppURL": "https://bibleprayer.app",
		}
		go func() {
			if err := s.mail.SendHTML(email, "Welcome to Bible Prayer", "welcome.html", data); err != nil {
				log.Printf("failed to send welcome email: %v", err)
			}
		}()
	}

	return nil
}

// Login verifies credentials and issues the signed identity token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Printf("login failed: unknown email %q", email)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := util.ComparePassword(u.Password, password); err != nil {
		log.Printf("login failed: wrong password for user %d", u.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(s.jwtSecret, u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *Service) Me(ctx context.Context, userID int) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// UpdateProfile applies a partial update. Email and password changes require
// the caller's current password.
func (s *Service) UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) error {
	fields := make(map[string]interface{})

	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}

	if req.Email != nil || req.NewPassword != nil {
		current, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := util.ComparePassword(current.Password, req.CurrentPassword); err != nil {
			return ErrWrongPassword
		}

		if req.Email != nil {
			taken, err := s.repo.EmailExists(ctx, *req.Email, userID)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
			fields["email"] = *req.Email
		}
		if req.NewPassword != nil {
			hashed, err := util.HashPassword(*req.NewPassword)
			if err != nil {
				return err
			}
			fields["password"] = hashed
		}
	}

	return s.repo.UpdateProfile(ctx, userID, fields)
}

func (s *Service) UpdateReadingProgress(ctx context.Context, userID, book, chapter int) error {
	return s.repo.UpdateReadingProgress(ctx, userID, book, chapter)
}

func (s *Service) UpdateAvatar(ctx context.Context, userID int, avatarURL string) error {
	return s.repo.UpdateAvatar(ctx, userID, avatarURL)
}

// PublicProfile returns a user's public fields plus their public prayers.
func (s *Service) PublicProfile(ctx context.Context, userID int) (*User, []PublicPrayer, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	prayers, err := s.repo.GetPublicPrayers(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if prayers == nil {
		prayers = []PublicPrayer{}
	}

	return u, prayers, nil
}
