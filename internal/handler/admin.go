package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/greenledger/ecotrack/internal/service"
)

// AdminHandler bundles dependencies for the administrator endpoints.  All
// routes here sit behind the session and admin middleware; the service
// enforces the self-modification invariant a second time.
type AdminHandler struct {
	Admin AdminAPI
}

func NewAdminHandler(admin AdminAPI) *AdminHandler { return &AdminHandler{Admin: admin} }

type addActionReq struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	UnitOfMeasure    string  `json:"unit_of_measure"`
	CoefficientValue float64 `json:"coefficient_value"`
	EmissionUnit     string  `json:"emission_unit"`
}

// AddAction creates a catalog entry together with its coefficient.
func (h *AdminHandler) AddAction(c echo.Context) error {
	var req addActionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	actionID, err := h.Admin.AddAction(ctx, service.AddActionInput{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		UnitOfMeasure:    req.UnitOfMeasure,
		CoefficientValue: req.CoefficientValue,
		EmissionUnit:     req.EmissionUnit,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "action added",
		"action_id": actionID,
	})
}

type updateCoefficientReq struct {
	CoefficientID    uint64  `json:"coefficient_id"`
	CoefficientValue float64 `json:"coefficient_value"`
}

// UpdateCoefficient sets a new emissions factor for an action's
// coefficient.  The action id in the path identifies the catalog entry
// being edited; the coefficient id in the body names the row to update.
func (h *AdminHandler) UpdateCoefficient(c echo.Context) error {
	if _, err := strconv.ParseUint(c.Param("id"), 10, 64); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid action id"})
	}
	var req updateCoefficientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Admin.UpdateCoefficient(ctx, req.CoefficientID, req.CoefficientValue); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "coefficient updated"})
}

// SearchUsers finds accounts by username or email substring.
func (h *AdminHandler) SearchUsers(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Admin.SearchUsers(ctx, c.QueryParam("query"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

type blockReq struct {
	IsBlocked bool `json:"is_blocked"`
}

// BlockUser blocks or unblocks the target account and invalidates its
// sessions.
func (h *AdminHandler) BlockUser(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	var req blockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Admin.SetUserBlocked(ctx, adminID, targetID, req.IsBlocked); err != nil {
		return fail(c, err)
	}
	msg := "user unblocked"
	if req.IsBlocked {
		msg = "user blocked"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

type roleReq struct {
	IsAdmin bool `json:"is_admin"`
}

// SetRole grants or revokes administrator rights on the target account and
// invalidates its sessions.
func (h *AdminHandler) SetRole(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	var req roleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Admin.SetUserRole(ctx, adminID, targetID, req.IsAdmin); err != nil {
		return fail(c, err)
	}
	msg := "user demoted to regular account"
	if req.IsAdmin {
		msg = "user promoted to administrator"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}
