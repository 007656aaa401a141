package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
	repo "github.com/snapsite/snapsite-backend/internal/domain/repository"
	"github.com/snapsite/snapsite-backend/pkg/helpers"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailTaken       = errors.New("email already in use")
	ErrUsernameTaken    = errors.New("username already in use")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
)

// AuthService implements account creation and login. Emails are normalized to
// lowercase before every lookup and write.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type SignupInput struct {
	Name            string
	Username        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Signup creates an account and returns the new user, a signed identity
// token, and its expiry. The user's Password field holds the bcrypt hash and
// must not be serialized; handlers return a password-free projection.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, string, time.Time, error) {
	if in.Password != in.ConfirmPassword {
		return nil, "", time.Time{}, ErrPasswordMismatch
	}
	email := strings.ToLower(in.Email)

	// Pre-check so the caller learns which field conflicts; the unique
	// indexes still back this up under concurrent signups.
	if existing, err := s.Users.GetByEmailOrUsername(ctx, email, in.Username); err == nil {
		if existing.Email == email {
			return nil, "", time.Time{}, ErrEmailTaken
		}
		return nil, "", time.Time{}, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", time.Time{}, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u := &entity.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    email,
		Phone:    in.Phone,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, "", time.Time{}, ErrEmailTaken
		case errors.Is(err, repo.ErrDuplicateUsername):
			return nil, "", time.Time{}, ErrUsernameTaken
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password are distinct failures, mirrored as 404 and 400 by the handler.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrUserNotFound
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrWrongPassword
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}
