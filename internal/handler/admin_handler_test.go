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

type stubAdmin struct {
	addActionID uint64
	addErr      error
	updateErr   error
	blockErr    error
	roleErr     error
	blocked     map[uint64]bool
}

var _ AdminAPI = (*stubAdmin)(nil)

func (s *stubAdmin) AddAction(context.Context, service.AddActionInput) (uint64, error) {
	return s.addActionID, s.addErr
}

func (s *stubAdmin) UpdateCoefficient(context.Context, uint64, float64) error { return s.updateErr }

func (s *stubAdmin) SearchUsers(context.Context, string) ([]service.Profile, error) {
	return []service.Profile{{UserID: 1, Username: "alice"}}, nil
}

func (s *stubAdmin) SetUserBlocked(_ context.Context, _, targetID uint64, blocked bool) error {
	if s.blockErr != nil {
		return s.blockErr
	}
	if s.blocked == nil {
		s.blocked = make(map[uint64]bool)
	}
	s.blocked[targetID] = blocked
	return nil
}

func (s *stubAdmin) SetUserRole(context.Context, uint64, uint64, bool) error { return s.roleErr }

func adminRequest(method, target, body string, pathParam string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, uint64(1))
	c.Set(middleware.CtxIsAdmin, true)
	if pathParam != "" {
		c.SetParamNames("id")
		c.SetParamValues(pathParam)
	}
	return c, rec
}

func TestAddActionHandler(t *testing.T) {
	h := NewAdminHandler(&stubAdmin{addActionID: 12})
	c, rec := adminRequest(http.MethodPost, "/api/admin/actions",
		`{"name":"Composting","category":"Waste","unit_of_measure":"kg","coefficient_value":0.08}`, "")
	require.NoError(t, h.AddAction(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"action_id":12`)
}

func TestUpdateCoefficientHandlerBadPathID(t *testing.T) {
	h := NewAdminHandler(&stubAdmin{})
	c, rec := adminRequest(http.MethodPut, "/api/admin/actions/abc",
		`{"coefficient_id":5,"coefficient_value":0.3}`, "abc")
	require.NoError(t, h.UpdateCoefficient(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCoefficientHandlerNotFound(t *testing.T) {
	h := NewAdminHandler(&stubAdmin{updateErr: errs.NotFound("coefficient not found")})
	c, rec := adminRequest(http.MethodPut, "/api/admin/actions/3",
		`{"coefficient_id":99,"coefficient_value":0.3}`, "3")
	require.NoError(t, h.UpdateCoefficient(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlockUserHandler(t *testing.T) {
	stub := &stubAdmin{}
	h := NewAdminHandler(stub)
	c, rec := adminRequest(http.MethodPut, "/api/admin/users/7/block", `{"is_blocked":true}`, "7")
	require.NoError(t, h.BlockUser(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "user blocked")
	require.True(t, stub.blocked[7])
}

func TestBlockUserHandlerSelf(t *testing.T) {
	h := NewAdminHandler(&stubAdmin{blockErr: errs.Forbidden("administrators cannot modify their own account")})
	c, rec := adminRequest(http.MethodPut, "/api/admin/users/1/block", `{"is_blocked":true}`, "1")
	require.NoError(t, h.BlockUser(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetRoleHandler(t *testing.T) {
	h := NewAdminHandler(&stubAdmin{})
	c, rec := adminRequest(http.MethodPut, "/api/admin/users/7/role", `{"is_admin":true}`, "7")
	require.NoError(t, h.SetRole(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "promoted")
}

func TestSearchUsersHandler(t *testing.T) {
	h := NewAdminHandler(&stubAdmin{})
	c, rec := adminRequest(http.MethodGet, "/api/admin/users/search?query=ali", "", "")
	require.NoError(t, h.SearchUsers(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"username":"alice"`)
}
