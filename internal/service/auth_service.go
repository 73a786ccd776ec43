package service

import (
	"context"
	"errors"
	"strings"

	"github.com/adi-1080/notesapp/internal/auth"
	dom "github.com/adi-1080/notesapp/internal/domain"
	"github.com/adi-1080/notesapp/internal/repo"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidCredentials covers both "no such account" and "wrong
// password". Login deliberately never says which, so the error carries
// no user-enumeration signal.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registering an already-used email.
var ErrEmailTaken = errors.New("email already registered")

// AuthService handles registration and login: directory lookup,
// password hashing/verification and token issuance.
type AuthService struct {
	repo  repo.UserRepo
	codec *auth.Codec
}

// NewAuthService returns a new AuthService.
func NewAuthService(repo repo.UserRepo, codec *auth.Codec) *AuthService {
	return &AuthService{repo: repo, codec: codec}
}

// Register creates an account and returns a fresh token for it.
// The lookup is only a pre-check for a friendly error; the unique
// constraint in the store decides concurrent races.
func (s *AuthService) Register(ctx context.Context, email, password string, fullName *string) (string, dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", dom.User{}, ErrInvalidCredentials
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", dom.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", dom.User{}, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", dom.User{}, err
	}
	u, err := s.repo.Create(ctx, email, hash, fullName)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return "", dom.User{}, ErrEmailTaken
		}
		return "", dom.User{}, err
	}
	token, err := s.codec.Issue(u.Email)
	if err != nil {
		return "", dom.User{}, err
	}
	return token, u, nil
}

// Login verifies credentials and returns a fresh token. Unknown email
// and wrong password produce the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", dom.User{}, ErrInvalidCredentials
		}
		return "", dom.User{}, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return "", dom.User{}, ErrInvalidCredentials
	}
	token, err := s.codec.Issue(u.Email)
	if err != nil {
		return "", dom.User{}, err
	}
	return token, u, nil
}
