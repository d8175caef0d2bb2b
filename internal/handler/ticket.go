package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/model"
	"github.com/tikevents/tikevents/internal/repository"
	"github.com/tikevents/tikevents/internal/utils"
)

// TicketHandler serves tickets of both kinds and their QR passes.
type TicketHandler struct {
	Tickets *repository.TicketRepo
	Events  *repository.EventRepo
}

// NewTicketHandler panics if any repository is nil.
func NewTicketHandler(tickets *repository.TicketRepo, events *repository.EventRepo) *TicketHandler {
	if tickets == nil || events == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Events: events}
}

// createTicketReq is the body of POST /v1/tickets. Benefits only apply to
// VIP tickets.
type createTicketReq struct {
	Kind     model.TicketKind `json:"kind"`
	EventID  int64            `json:"event_id"`
	Price    float64          `json:"price"`
	SeatID   *int64           `json:"seat_id"`
	Benefits *string          `json:"benefits"`
}

// benefitsReq leaves the benefits alone when the key is absent and clears
// them on an explicit null.
type benefitsReq struct {
	Benefits model.Field[string] `json:"benefits"`
}

// CreateTicket handles POST /v1/tickets. kind selects VIP or STANDARD and
// is matched case-insensitively.
func (h *TicketHandler) CreateTicket(c echo.Context) error {
	var req createTicketReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	req.Kind = model.TicketKind(strings.ToUpper(strings.TrimSpace(string(req.Kind))))

	ctx := c.Request().Context()
	var id int64
	var err error
	switch req.Kind {
	case model.KindVIP:
		id, err = h.Tickets.CreateVIP(ctx, model.NewVIPTicket{
			EventID: req.EventID, Price: req.Price, SeatID: req.SeatID, Benefits: req.Benefits,
		})
	case model.KindStandard:
		if req.Benefits != nil {
			return respondError(c, model.Invalid("benefits", "only apply to VIP tickets"))
		}
		id, err = h.Tickets.CreateStandard(ctx, model.NewStandardTicket{
			EventID: req.EventID, Price: req.Price, SeatID: req.SeatID,
		})
	default:
		return respondError(c, model.Invalid("kind", "must be VIP or STANDARD"))
	}
	if err != nil {
		return respondError(c, err)
	}
	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// GetTicket handles GET /v1/tickets/:id.
func (h *TicketHandler) GetTicket(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "ticket id")
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// ListEventTickets handles GET /v1/events/:id/tickets.
func (h *TicketHandler) ListEventTickets(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	out, err := h.Tickets.ListByEvent(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateTicket patches the columns every ticket shares: event, price and seat.
func (h *TicketHandler) UpdateTicket(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "ticket id")
	}
	var p model.TicketPatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Tickets.UpdateCommon(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrTicketNotFound)
}

// UpdateBenefits handles PUT /v1/tickets/:id/benefits. A null benefits
// value clears them and a body without the key changes nothing. Standard
// tickets have no benefits to set and get 409.
func (h *TicketHandler) UpdateBenefits(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "ticket id")
	}
	var req benefitsReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if !req.Benefits.IsSet() {
		return c.JSON(http.StatusOK, echo.Map{"affected": 0})
	}
	var benefits *string
	if v, ok := req.Benefits.Get(); ok {
		benefits = &v
	}
	ctx := c.Request().Context()
	n, err := h.Tickets.UpdateVIPBenefits(ctx, id, benefits)
	if err != nil {
		return respondError(c, err)
	}
	if n == 0 {
		t, err := h.Tickets.GetByID(ctx, id)
		if err != nil {
			return respondError(c, err)
		}
		if !t.IsVIP {
			return c.JSON(http.StatusConflict, echo.Map{"error": "ticket is not VIP"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"affected": n})
}

// DeleteTicket removes the ticket and its specialization. Sold tickets are
// kept and answer 409.
func (h *TicketHandler) DeleteTicket(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "ticket id")
	}
	n, err := h.Tickets.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrTicketNotFound)
}

// TicketPass handles GET /v1/tickets/:id/qr and returns a PNG QR code
// identifying the ticket. ?size= sets the edge length in pixels and must
// lie within 64..1024.
func (h *TicketHandler) TicketPass(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "ticket id")
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	size := utils.DefaultQRSize
	if s := c.QueryParam("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid size"})
		}
		if !utils.ValidQRSize(n) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": fmt.Sprintf("size must be between %d and %d", utils.MinQRSize, utils.MaxQRSize),
			})
		}
		size = n
	}
	png, err := utils.TicketPassPNG(utils.TicketPassRef(t.ID, t.EventID, string(t.Kind)), size)
	if err != nil {
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// Integrity handles GET /v1/admin/integrity: tickets that do not have
// exactly one specialization matching their kind.
func (h *TicketHandler) Integrity(c echo.Context) error {
	out, err := h.Tickets.Inconsistent(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"consistent": len(out) == 0, "tickets": out})
}
