package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/greenledger/ecotrack/internal/session"
)

// Context keys under which the authenticated identity is stored.
const (
	CtxUserID  = "user_id"
	CtxIsAdmin = "is_admin"
	CtxToken   = "session_token"
)

// SessionAuth returns an Echo middleware that validates an opaque Bearer
// token against the session store and injects the snapshot into the
// request context.  A missing or unknown token yields 401.  A snapshot
// marked blocked yields 403 and deletes the session on the spot: even if
// the proactive invalidation at block time missed this token, the stale
// "blocked" state heals itself on the user's next request.
func SessionAuth(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}

			sess, err := store.Get(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired session"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "session lookup failed"})
			}
			if sess.IsBlocked {
				_ = store.Delete(c.Request().Context(), token)
				return c.JSON(http.StatusForbidden, echo.Map{"message": "your account has been blocked by an administrator"})
			}

			c.Set(CtxUserID, sess.UserID)
			c.Set(CtxIsAdmin, sess.IsAdmin)
			c.Set(CtxToken, token)
			return next(c)
		}
	}
}

// RequireAdmin returns a middleware enforcing that the session snapshot
// carries admin rights.  It assumes SessionAuth ran earlier in the chain.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get(CtxIsAdmin).(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "administrator rights required"})
			}
			return next(c)
		}
	}
}
