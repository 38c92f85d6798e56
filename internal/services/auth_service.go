package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"resortshare/internal/domain"
	"resortshare/internal/repos"
)

var (
	ErrBadCreds      = errors.New("invalid credentials")
	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrUsernameTaken = errors.New("user with this username already exists")
)

type AuthService struct {
	Users *repos.UserRepo
}

// Register creates a USER account after uniqueness checks on email and
// username.
func (s *AuthService) Register(username, email, password, first, last string) (*domain.User, error) {
	if u, _ := s.Users.ByEmail(email); u != nil {
		return nil, ErrEmailTaken
	}
	if u, _ := s.Users.ByUsername(username); u != nil {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(username, email, string(hash), first, last, "USER")
}

// Login accepts an email or a username as the identifier and binds the
// session on success.
func (s *AuthService) Login(sid, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	u, err := s.Users.ByEmail(identifier)
	if err != nil {
		u, err = s.Users.ByUsername(identifier)
	}
	if err != nil || u == nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
