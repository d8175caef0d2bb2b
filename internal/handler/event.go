package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/model"
	"github.com/tikevents/tikevents/internal/repository"
)

// EventHandler serves events, artists and the line-up that links them.
type EventHandler struct {
	Events  *repository.EventRepo
	Artists *repository.ArtistRepo
	Lineup  *repository.EventArtistRepo
	Venues  *repository.VenueRepo
}

// NewEventHandler panics if any repository is nil.
func NewEventHandler(events *repository.EventRepo, artists *repository.ArtistRepo, lineup *repository.EventArtistRepo, venues *repository.VenueRepo) *EventHandler {
	if events == nil || artists == nil || lineup == nil || venues == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Events: events, Artists: artists, Lineup: lineup, Venues: venues}
}

// ----- events -----

// ListEvents handles GET /v1/events.
func (h *EventHandler) ListEvents(c echo.Context) error {
	out, err := h.Events.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListVenueEvents handles GET /v1/venues/:id/events.
func (h *EventHandler) ListVenueEvents(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "venue id")
	}
	ctx := c.Request().Context()
	if _, err := h.Venues.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	out, err := h.Events.ListByVenue(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetEvent handles GET /v1/events/:id.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// CreateEvent handles POST /v1/events and answers 201 with the stored event.
// An unknown venue is 422.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var in model.NewEvent
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	ctx := c.Request().Context()
	id, err := h.Events.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

// UpdateEvent handles PATCH and PUT /v1/events/:id.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	var p model.EventPatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Events.Update(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrEventNotFound)
}

// DeleteEvent removes the event together with its tickets and line-up.
// Tickets that were sold block it with 409.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	n, err := h.Events.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrEventNotFound)
}

// ----- artists -----

// ListArtists handles GET /v1/artists.
func (h *EventHandler) ListArtists(c echo.Context) error {
	out, err := h.Artists.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetArtist handles GET /v1/artists/:id.
func (h *EventHandler) GetArtist(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "artist id")
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// CreateArtist handles POST /v1/artists.
func (h *EventHandler) CreateArtist(c echo.Context) error {
	var in model.NewArtist
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	ctx := c.Request().Context()
	id, err := h.Artists.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// UpdateArtist handles PATCH and PUT /v1/artists/:id.
func (h *EventHandler) UpdateArtist(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "artist id")
	}
	var p model.ArtistPatch
	if err := c.Bind(&p); err != nil {
		return badBody(c)
	}
	n, err := h.Artists.Update(c.Request().Context(), id, p)
	return patched(c, p.Empty(), n, err, repository.ErrArtistNotFound)
}

// DeleteArtist removes the artist together with its lineup entries.
func (h *EventHandler) DeleteArtist(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "artist id")
	}
	n, err := h.Artists.Delete(c.Request().Context(), id)
	return deleted(c, n, err, repository.ErrArtistNotFound)
}

// ----- line-up -----

// ListEventArtists handles GET /v1/events/:id/artists.
func (h *EventHandler) ListEventArtists(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	out, err := h.Lineup.ArtistsOfEvent(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListArtistEvents handles GET /v1/artists/:id/events.
func (h *EventHandler) ListArtistEvents(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badID(c, "artist id")
	}
	ctx := c.Request().Context()
	if _, err := h.Artists.GetByID(ctx, id); err != nil {
		return respondError(c, err)
	}
	out, err := h.Lineup.EventsOfArtist(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// AddArtist handles POST /v1/events/:id/artists/:artist_id. Adding the same
// artist twice is a 409; an unknown event or artist is a 422.
func (h *EventHandler) AddArtist(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	artistID, ok := pathID(c, "artist_id")
	if !ok {
		return badID(c, "artist id")
	}
	n, err := h.Lineup.Associate(c.Request().Context(), eventID, artistID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"affected": n})
}

// RemoveArtist handles DELETE /v1/events/:id/artists/:artist_id. Removing
// an artist that is not in the line-up reports zero affected rows.
func (h *EventHandler) RemoveArtist(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badID(c, "event id")
	}
	artistID, ok := pathID(c, "artist_id")
	if !ok {
		return badID(c, "artist id")
	}
	n, err := h.Lineup.Dissociate(c.Request().Context(), eventID, artistID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"affected": n})
}
