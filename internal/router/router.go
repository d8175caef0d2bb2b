package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/handler"
	"github.com/tikevents/tikevents/internal/middleware"
	"github.com/tikevents/tikevents/internal/utils"
)

// RegisterRoutes registers the probes. Neither requires authentication.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
}

// RegisterAuth registers the operator login.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}

// operator returns a /v1 group whose routes require an operator token.
// Reads are registered directly on e and stay public.
func operator(e *echo.Echo, jwtSecret string) *echo.Group {
	return e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleOperator),
	)
}

// RegisterLayout registers venues, sectors and seats.
func RegisterLayout(e *echo.Echo, h *handler.LayoutHandler, jwtSecret string) {
	e.GET("/v1/venues", h.ListVenues)
	e.GET("/v1/venues/:id", h.GetVenue)
	e.GET("/v1/venues/:id/sectors", h.ListVenueSectors)
	e.GET("/v1/sectors", h.ListSectors)
	e.GET("/v1/sectors/:id", h.GetSector)
	e.GET("/v1/sectors/:id/seats", h.ListSectorSeats)
	e.GET("/v1/seats/:id", h.GetSeat)

	g := operator(e, jwtSecret)

	// ---- Venues ----
	g.POST("/venues", h.CreateVenue)
	g.PATCH("/venues/:id", h.UpdateVenue)
	g.PUT("/venues/:id", h.UpdateVenue)
	g.DELETE("/venues/:id", h.DeleteVenue)

	// ---- Sectors ----
	g.POST("/sectors", h.CreateSector)
	g.PATCH("/sectors/:id", h.UpdateSector)
	g.PUT("/sectors/:id", h.UpdateSector)
	g.DELETE("/sectors/:id", h.DeleteSector)

	// ---- Seats ----
	g.POST("/seats", h.CreateSeat)
	g.PATCH("/seats/:id", h.UpdateSeat)
	g.PUT("/seats/:id", h.UpdateSeat)
	g.DELETE("/seats/:id", h.DeleteSeat)
}

// RegisterEvents registers events, artists and the line-up.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string) {
	e.GET("/v1/events", h.ListEvents)
	e.GET("/v1/events/:id", h.GetEvent)
	e.GET("/v1/events/:id/artists", h.ListEventArtists)
	e.GET("/v1/venues/:id/events", h.ListVenueEvents)
	e.GET("/v1/artists", h.ListArtists)
	e.GET("/v1/artists/:id", h.GetArtist)
	e.GET("/v1/artists/:id/events", h.ListArtistEvents)

	g := operator(e, jwtSecret)

	// ---- Events ----
	g.POST("/events", h.CreateEvent)
	g.PATCH("/events/:id", h.UpdateEvent)
	g.PUT("/events/:id", h.UpdateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)

	// ---- Artists ----
	g.POST("/artists", h.CreateArtist)
	g.PATCH("/artists/:id", h.UpdateArtist)
	g.PUT("/artists/:id", h.UpdateArtist)
	g.DELETE("/artists/:id", h.DeleteArtist)

	// ---- Line-up ----
	g.POST("/events/:id/artists/:artist_id", h.AddArtist)
	g.DELETE("/events/:id/artists/:artist_id", h.RemoveArtist)
}

// RegisterTickets registers tickets, their passes and the integrity check.
// The integrity report is an operator tool and is not public.
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, jwtSecret string) {
	e.GET("/v1/tickets/:id", h.GetTicket)
	e.GET("/v1/tickets/:id/qr", h.TicketPass)
	e.GET("/v1/events/:id/tickets", h.ListEventTickets)

	g := operator(e, jwtSecret)
	g.POST("/tickets", h.CreateTicket)
	g.PATCH("/tickets/:id", h.UpdateTicket)
	g.PUT("/tickets/:id", h.UpdateTicket)
	g.PUT("/tickets/:id/benefits", h.UpdateBenefits)
	g.PATCH("/tickets/:id/benefits", h.UpdateBenefits)
	g.DELETE("/tickets/:id", h.DeleteTicket)
	g.GET("/admin/integrity", h.Integrity)
}

// RegisterSales registers buyers, sales and the sales reports.
func RegisterSales(e *echo.Echo, h *handler.SalesHandler, jwtSecret string) {
	e.GET("/v1/buyers", h.ListBuyers)
	e.GET("/v1/buyers/:id", h.GetBuyer)
	e.GET("/v1/buyers/:id/sales", h.BuyerSales)
	e.GET("/v1/events/:id/sales", h.EventSales)
	e.GET("/v1/sales/:id", h.GetSale)

	g := operator(e, jwtSecret)

	// ---- Buyers ----
	g.POST("/buyers", h.CreateBuyer)
	g.PATCH("/buyers/:id", h.UpdateBuyer)
	g.PUT("/buyers/:id", h.UpdateBuyer)
	g.DELETE("/buyers/:id", h.DeleteBuyer)

	// ---- Sales ----
	g.POST("/sales", h.CreateSale)
	g.PATCH("/sales/:id", h.UpdateSale)
	g.PUT("/sales/:id", h.UpdateSale)
	g.DELETE("/sales/:id", h.DeleteSale)
}
