package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenledger/ecotrack/internal/queue"
)

// EcoHandler bundles dependencies for the catalog, record and report
// endpoints.
type EcoHandler struct {
	Eco EcoAPI
}

func NewEcoHandler(eco EcoAPI) *EcoHandler { return &EcoHandler{Eco: eco} }

// ListActions serves the public action catalog joined with coefficients.
func (h *EcoHandler) ListActions(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	entries, err := h.Eco.ListActions(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

type createRecordReq struct {
	ActionID   uint64  `json:"action_id"`
	Quantity   float64 `json:"quantity"`
	RecordDate string  `json:"record_date"`
}

// CreateRecord appends a ledger entry for the authenticated user and
// publishes an audit event.  The publish is fire-and-forget: a broker
// outage never fails the request.
func (h *EcoHandler) CreateRecord(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req createRecordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	recordID, err := h.Eco.CreateRecord(ctx, userID, req.ActionID, req.Quantity, req.RecordDate)
	if err != nil {
		return fail(c, err)
	}

	go func(ev queue.RecordLoggedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue.PublishRecordLogged(pubCtx, ev)
	}(queue.RecordLoggedEvent{
		RecordID:   recordID,
		UserID:     userID,
		ActionID:   req.ActionID,
		Quantity:   req.Quantity,
		RecordDate: req.RecordDate,
		LoggedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "record saved",
		"record_id": recordID,
	})
}

// ListRecords serves the authenticated user's ledger, newest first.
func (h *EcoHandler) ListRecords(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	records, err := h.Eco.ListUserRecords(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// Report serves the aggregated per-category contribution report over an
// optional inclusive date range (?startDate=&endDate=).
func (h *EcoHandler) Report(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	rep, err := h.Eco.GenerateReport(ctx, userID, c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}
