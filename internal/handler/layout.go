package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/model"
	"github.com/tikevents/tikevents/internal/repository"
)

// LayoutHandler serves venues and their physical layout: sectors and seats.
type LayoutHandler struct {
	Venues  *repository.VenueRepo
	Sectors *repository.SectorRepo
	Seats   *repository.SeatRepo
}

// NewLayoutHandler panics if any repository is nil.
func NewLayoutHandler(venues *repository.VenueRepo, sectors *repository.SectorRepo, seats *repository.SeatRepo) *LayoutHandler {
	if venues == nil || sectors == nil || seats == nil {
		panic("nil repository passed to NewLayoutHandler")
	}
	return &LayoutHandler{Venues: venues, Sectors: sectors, Seats: seats}
}

// ----- venues -----

// ListVenues handles GET /v1/venues.
func (h *LayoutHandler) ListVenues(c echo.Context) error {
	out, err := h.Venues.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetVenue handles GET /v1/venues/:id.
func (h *LayoutHandler) GetVenue(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "venue id")
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// CreateVenue handles POST /v1/venues and answers 201 with the stored venue.
func (h *LayoutHandler) CreateVenue(c echo.Context) error {
	var in model.NewVenue
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	ctx := c.Request().Context()
	id, err := h.Venues.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// UpdateVenue handles PATCH and PUT /v1/venues/:id. Only the keys present
// in the body are written; null clears the address.
func (h *LayoutHandler) UpdateVenue(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "venue id")
	}
	var p model.VenuePatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Venues.Update(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrVenueNotFound)
}

// DeleteVenue removes the venue with its sectors and seats. Scheduled
// events block it with 409.
func (h *LayoutHandler) DeleteVenue(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "venue id")
	}
	n, err := h.Venues.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrVenueNotFound)
}

// ----- sectors -----

// ListSectors handles GET /v1/sectors.
func (h *LayoutHandler) ListSectors(c echo.Context) error {
	out, err := h.Sectors.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListVenueSectors handles GET /v1/venues/:id/sectors.
func (h *LayoutHandler) ListVenueSectors(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "venue id")
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	out, err := h.Sectors.ListByVenue(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetSector handles GET /v1/sectors/:id.
func (h *LayoutHandler) GetSector(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "sector id")
	}
	s, err := h.Sectors.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// CreateSector handles POST /v1/sectors.
func (h *LayoutHandler) CreateSector(c echo.Context) error {
	var in model.NewSector
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	ctx := c.Request().Context()
	id, err := h.Sectors.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.Sectors.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSector handles PATCH and PUT /v1/sectors/:id.
func (h *LayoutHandler) UpdateSector(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "sector id")
	}
	var p model.SectorPatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Sectors.Update(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrSectorNotFound)
}

// DeleteSector removes the sector and its seats.
func (h *LayoutHandler) DeleteSector(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "sector id")
	}
	n, err := h.Sectors.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrSectorNotFound)
}

// ----- seats -----

// ListSectorSeats handles GET /v1/sectors/:id/seats.
func (h *LayoutHandler) ListSectorSeats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "sector id")
	}
	ctx := c.Request().Context()
	if _, err := h.Sectors.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	out, err := h.Seats.ListBySector(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetSeat handles GET /v1/seats/:id.
func (h *LayoutHandler) GetSeat(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "seat id")
	}
	s, err := h.Seats.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// CreateSeat handles POST /v1/seats. A row and number already taken in
// the sector is 409.
func (h *LayoutHandler) CreateSeat(c echo.Context) error {
	var in model.NewSeat
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	ctx := c.Request().Context()
	id, err := h.Seats.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	s, err := h.Seats.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSeat handles PATCH and PUT /v1/seats/:id.
func (h *LayoutHandler) UpdateSeat(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "seat id")
	}
	var p model.SeatPatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Seats.Update(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrSeatNotFound)
}

// DeleteSeat removes a seat. Tickets placed on it stay and lose their seat.
func (h *LayoutHandler) DeleteSeat(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "seat id")
	}
	n, err := h.Seats.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrSeatNotFound)
}
