package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenledger/ecotrack/internal/middleware"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth AuthAPI
}

func NewAuthHandler(auth AuthAPI) *AuthHandler { return &AuthHandler{Auth: auth} }

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account.  No session is issued here; the client
// logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Auth.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "registration successful, you can now log in"})
}

// Login verifies credentials and returns a fresh session token together
// with the user's public projection.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	token, profile, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   token,
		"user":    profile,
	})
}

// Logout destroys the presented session (protected route).
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.CtxToken).(string)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Auth.Logout(ctx, token); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the live user row's public projection, not the login-time
// snapshot (protected route).
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	profile, err := h.Auth.CurrentUser(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// reqContext bounds the duration of downstream calls for a request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
