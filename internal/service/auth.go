// Package service contains the application's domain logic: validation,
// authorization invariants, derived values and orchestration of the
// persistence and session layers.  Services raise typed errs values; the
// handlers only translate them to HTTP.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/greenledger/ecotrack/internal/errs"
	"github.com/greenledger/ecotrack/internal/model"
	"github.com/greenledger/ecotrack/internal/repository"
	"github.com/greenledger/ecotrack/internal/session"
	"github.com/greenledger/ecotrack/internal/utils"
)

// UserStore is the persistence surface the auth and admin services need
// from the users table.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
	SetBlocked(ctx context.Context, id uint64, blocked bool) error
	SetAdmin(ctx context.Context, id uint64, admin bool) error
}

// Profile is the public projection of a user: everything except the
// password hash.
type Profile struct {
	UserID    uint64 `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	IsBlocked bool   `json:"isBlocked"`
}

// AuthService implements registration, login and session lifecycle.
type AuthService struct {
	users      UserStore
	sessions   session.Store
	bcryptCost int
}

// NewAuthService constructs an AuthService with its dependencies.
func NewAuthService(users UserStore, sessions session.Store, bcryptCost int) *AuthService {
	return &AuthService{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

// Register validates the input, hashes the password and persists a new
// non-admin user.  There is no auto-login; the client logs in afterwards.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return errs.Validation("username, email and password are required")
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return errs.Internal("could not hash password")
	}
	if _, err := s.users.Create(ctx, username, email, hash); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return errs.Conflict("a user with this username or email already exists")
		}
		return err
	}
	return nil
}

// Login verifies credentials, rejects blocked accounts and mints a new
// opaque session token whose snapshot captures the user's id and role at
// this moment.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", Profile{}, errs.Validation("username and password are required")
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", Profile{}, errs.Unauthorized("invalid username or password")
		}
		return "", Profile{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return "", Profile{}, errs.Unauthorized("invalid username or password")
	}
	if u.IsBlocked {
		return "", Profile{}, errs.Forbidden("your account has been blocked by an administrator")
	}
	token, err := utils.NewSessionToken()
	if err != nil {
		return "", Profile{}, errs.Internal("could not issue session token")
	}
	sess := session.Session{
		Token:     token,
		UserID:    u.ID,
		IsAdmin:   u.IsAdmin,
		IsBlocked: u.IsBlocked,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", Profile{}, errs.Internal("could not store session")
	}
	return token, profileOf(u), nil
}

// Logout destroys exactly the presented session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser returns the public projection of the user row.  The live row
// is consulted, not the session snapshot, so the response reflects role
// changes made since login.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint64) (Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, errs.NotFound("user not found")
		}
		return Profile{}, err
	}
	return profileOf(u), nil
}

func profileOf(u model.User) Profile {
	return Profile{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsBlocked: u.IsBlocked,
	}
}
