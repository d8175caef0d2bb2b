package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/middleware"
	"github.com/tikevents/tikevents/internal/model"
	"github.com/tikevents/tikevents/internal/queue"
	"github.com/tikevents/tikevents/internal/repository"
)

const publishTimeout = 5 * time.Second

// SalesHandler serves buyers, sales and the sales reports. Recorded sales
// are announced on the broker.
type SalesHandler struct {
	Buyers    *repository.BuyerRepo
	Sales     *repository.SaleRepo
	Reports   *repository.ReportRepo
	Events    *repository.EventRepo
	Publisher queue.Publisher
	Log       *slog.Logger
}

// NewSalesHandler panics if any dependency is nil.
func NewSalesHandler(buyers *repository.BuyerRepo, sales *repository.SaleRepo, reports *repository.ReportRepo,
	events *repository.EventRepo, pub queue.Publisher, log *slog.Logger) *SalesHandler {
	if buyers == nil || sales == nil || reports == nil || events == nil || pub == nil || log == nil {
		panic("nil dependency passed to NewSalesHandler")
	}
	return &SalesHandler{Buyers: buyers, Sales: sales, Reports: reports, Events: events, Publisher: pub, Log: log}
}

// buyerReport is the body of GET /v1/buyers/:id/sales.
type buyerReport struct {
	Buyer      *model.Buyer          `json:"buyer"`
	Lines      []model.BuyerSaleLine `json:"lines"`
	GrandTotal float64               `json:"grand_total"`
}

// ----- buyers -----

// ListBuyers handles GET /v1/buyers.
func (h *SalesHandler) ListBuyers(c echo.Context) error {
	out, err := h.Buyers.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetBuyer handles GET /v1/buyers/:id.
func (h *SalesHandler) GetBuyer(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "buyer id")
	}
	b, err := h.Buyers.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// CreateBuyer handles POST /v1/buyers. Emails are unique; a repeat is 409.
func (h *SalesHandler) CreateBuyer(c echo.Context) error {
	var in model.NewBuyer
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	ctx := c.Request().Context()
	id, err := h.Buyers.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	b, err := h.Buyers.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// UpdateBuyer handles PATCH and PUT /v1/buyers/:id.
func (h *SalesHandler) UpdateBuyer(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "buyer id")
	}
	var p model.BuyerPatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Buyers.Update(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrBuyerNotFound)
}

// DeleteBuyer answers 409 while the buyer has sales.
func (h *SalesHandler) DeleteBuyer(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "buyer id")
	}
	n, err := h.Buyers.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrBuyerNotFound)
}

// BuyerSales handles GET /v1/buyers/:id/sales: the buyer's purchases,
// newest first, with the grand total of all lines.
func (h *SalesHandler) BuyerSales(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "buyer id")
	}
	ctx := c.Request().Context()
	b, err := h.Buyers.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	lines, err := h.Reports.SalesByBuyer(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, buyerReport{Buyer: b, Lines: lines, GrandTotal: model.GrandTotal(lines)})
}

// EventSales handles GET /v1/events/:id/sales, oldest first.
func (h *SalesHandler) EventSales(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	lines, err := h.Reports.SalesByEvent(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lines)
}

// ----- sales -----

// GetSale handles GET /v1/sales/:id.
func (h *SalesHandler) GetSale(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "sale id")
	}
	s, err := h.Sales.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// CreateSale records a sale and then publishes sale.recorded. The sale is
// committed before publishing, so a broker failure is only logged.
func (h *SalesHandler) CreateSale(c echo.Context) error {
	var in model.NewSale
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	ctx := c.Request().Context()
	id, err := h.Sales.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.Sales.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := queue.SaleRecordedEvent{
		SaleID:     s.ID,
		TicketID:   s.TicketID,
		BuyerID:    s.BuyerID,
		Quantity:   s.Quantity,
		SaleDate:   s.SaleDate.String(),
		RecordedBy: middleware.Operator(c),
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishSaleRecorded(pubCtx, ev); err != nil {
		h.Log.Warn("sale recorded but not published", "sale_id", s.ID, "request_id", requestID(c), "err", err)
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSale handles PATCH and PUT /v1/sales/:id. No sale.recorded event
// is sent for corrections.
func (h *SalesHandler) UpdateSale(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "sale id")
	}
	var p model.SalePatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Sales.Update(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrSaleNotFound)
}

// DeleteSale handles DELETE /v1/sales/:id.
func (h *SalesHandler) DeleteSale(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "sale id")
	}
	n, err := h.Sales.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrSaleNotFound)
}
