package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe. It never touches the store.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Pinger is satisfied by *database.Provider.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ready returns the readiness probe: 200 while the store answers a ping,
// 503 otherwise.
func Ready(db Pinger) echo.HandlerFunc {
	if db == nil {
		panic("nil store passed to Ready")
	}
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	}
}
