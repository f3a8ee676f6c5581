// Package session holds the server-side session state behind an explicit
// store abstraction.  A session maps an opaque bearer token to a snapshot
// of the user's identity and role, taken at login.  The snapshot can go
// stale relative to the users table; the auth middleware self-heals the
// blocked case and admin operations proactively invalidate every session
// of the affected user.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the token is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is the identity snapshot stored per token.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint64    `json:"user_id"`
	IsAdmin   bool      `json:"is_admin"`
	IsBlocked bool      `json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the single capability used everywhere a session is created,
// consulted or destroyed.  DeleteAllForUser is the unified invalidation
// hook called whenever a user's authorization-relevant fields change.
type Store interface {
	// Create persists the session under its token.
	Create(ctx context.Context, s Session) error
	// Get looks up the snapshot for a token.  Unknown or expired tokens
	// yield ErrNotFound.
	Get(ctx context.Context, token string) (Session, error)
	// Delete removes one session.  Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
	// DeleteAllForUser removes every session belonging to userID.
	DeleteAllForUser(ctx context.Context, userID uint64) error
}
