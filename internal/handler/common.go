package handler // handler defines the HTTP surface of the application

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/greenledger/ecotrack/internal/errs"
	"github.com/greenledger/ecotrack/internal/middleware"
	"github.com/greenledger/ecotrack/internal/model"
	"github.com/greenledger/ecotrack/internal/service"
)

// AuthAPI is the slice of the auth service the handlers call.
type AuthAPI interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) (string, service.Profile, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID uint64) (service.Profile, error)
}

// EcoAPI is the slice of the eco service the handlers call.
type EcoAPI interface {
	ListActions(ctx context.Context) ([]model.CatalogEntry, error)
	CreateRecord(ctx context.Context, userID, actionID uint64, quantity float64, recordDate string) (uint64, error)
	ListUserRecords(ctx context.Context, userID uint64) ([]model.RecordDetail, error)
	GenerateReport(ctx context.Context, userID uint64, startDate, endDate string) (service.Report, error)
}

// AdminAPI is the slice of the admin service the handlers call.
type AdminAPI interface {
	AddAction(ctx context.Context, in service.AddActionInput) (uint64, error)
	UpdateCoefficient(ctx context.Context, coefficientID uint64, value float64) error
	SearchUsers(ctx context.Context, query string) ([]service.Profile, error)
	SetUserBlocked(ctx context.Context, adminID, targetID uint64, blocked bool) error
	SetUserRole(ctx context.Context, adminID, targetID uint64, admin bool) error
}

// getUserID extracts the authenticated user id placed in the context by
// the session middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get(middleware.CtxUserID).(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// fail translates a typed service error into its HTTP status and the
// uniform {message} body.  Untyped errors become 500 with a generic
// message; their details stay in the server log only.
func fail(c echo.Context, err error) error {
	return c.JSON(errs.Status(err), echo.Map{"message": errs.Message(err)})
}
