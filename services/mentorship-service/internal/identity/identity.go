// Package identity authenticates staff accounts and issues session tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/md-rashed-zaman/mentorconnect/libs/auth"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is compared against when the email is unknown so that both
// rejection paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("mentorconnect-unknown-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

type Service struct {
	users   storage.UserRepository
	signer  *auth.Signer
	logger  *slog.Logger
	compare func(hash, password []byte) error
}

func NewService(users storage.UserRepository, signer *auth.Signer, logger *slog.Logger) *Service {
	return &Service{users: users, signer: signer, logger: logger, compare: bcrypt.CompareHashAndPassword}
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

// Login checks email, password and the requested role. Every mismatch reports ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string, role model.Role) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if storage.IsNotFound(err) {
			_ = s.compare(dummyHash(), []byte(password))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := s.compare([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", "user_id", u.ID, "reason", "password")
		return Session{}, ErrInvalidCredentials
	}
	if role != "" && u.Role != role {
		s.logger.Info("login rejected", "user_id", u.ID, "reason", "role")
		return Session{}, ErrInvalidCredentials
	}

	token, exp, err := s.signer.Sign(u.ID, string(u.Role), u.Name, u.Email)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// HashPassword is used when provisioning staff accounts.
func HashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
