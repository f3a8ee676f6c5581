package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/greenledger/ecotrack/internal/errs"
	"github.com/greenledger/ecotrack/internal/middleware"
	"github.com/greenledger/ecotrack/internal/service"
)

type stubAuth struct {
	registerErr error
	loginToken  string
	loginErr    error
	loggedOut   []string
	profile     service.Profile
	currentErr  error
}

var _ AuthAPI = (*stubAuth)(nil)

func (s *stubAuth) Register(context.Context, string, string, string) error { return s.registerErr }

func (s *stubAuth) Login(context.Context, string, string) (string, service.Profile, error) {
	return s.loginToken, s.profile, s.loginErr
}

func (s *stubAuth) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func (s *stubAuth) CurrentUser(context.Context, uint64) (service.Profile, error) {
	return s.profile, s.currentErr
}

func jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterHandler(t *testing.T) {
	h := NewAuthHandler(&stubAuth{})
	c, rec := jsonRequest(http.MethodPost, "/api/register", `{"username":"alice","email":"a@x.com","password":"secret1"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterHandlerConflict(t *testing.T) {
	h := NewAuthHandler(&stubAuth{registerErr: errs.Conflict("username is already taken")})
	c, rec := jsonRequest(http.MethodPost, "/api/register", `{"username":"alice","email":"a@x.com","password":"secret1"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "username is already taken")
}

func TestLoginHandler(t *testing.T) {
	h := NewAuthHandler(&stubAuth{
		loginToken: "tok",
		profile:    service.Profile{UserID: 1, Username: "alice"},
	})
	c, rec := jsonRequest(http.MethodPost, "/api/login", `{"username":"alice","password":"secret1"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"token":"tok"`)
	require.Contains(t, rec.Body.String(), `"username":"alice"`)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuth{loginErr: errs.Unauthorized("invalid username or password")})
	c, rec := jsonRequest(http.MethodPost, "/api/login", `{"username":"alice","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	stub := &stubAuth{}
	h := NewAuthHandler(stub)
	c, rec := jsonRequest(http.MethodPost, "/api/logout", "")
	c.Set(middleware.CtxToken, "tok")
	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"tok"}, stub.loggedOut)
}

func TestMeHandler(t *testing.T) {
	h := NewAuthHandler(&stubAuth{profile: service.Profile{UserID: 4, Username: "bob", IsAdmin: true}})
	c, rec := jsonRequest(http.MethodGet, "/api/user", "")
	c.Set(middleware.CtxUserID, uint64(4))
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"isAdmin":true`)
}
