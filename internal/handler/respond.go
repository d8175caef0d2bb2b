package handler // handler contains the echo handlers of the ticketing API

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/model"
)

// respondError translates a repository error into a status code and a JSON
// body. Anything unclassified is logged and reported as 500.
func respondError(c echo.Context, err error) error {
	var ve *model.ValidationError
	var cv *model.ConstraintViolation
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.As(err, &cv):
		body := echo.Map{"error": cv.Kind.String() + " violation", "table": cv.Table}
		switch cv.Kind {
		case model.Uniqueness, model.ForeignKeyRestrict:
			return c.JSON(http.StatusConflict, body)
		case model.ForeignKeyMissing:
			return c.JSON(http.StatusUnprocessableEntity, body)
		default:
			return c.JSON(http.StatusBadRequest, body)
		}
	case model.IsConnection(err), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("store unavailable", "path", c.Path(), "err", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	}
	slog.Error("request failed", "path", c.Path(), "request_id", requestID(c), "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badID(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + name})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
}

// patched writes the outcome of a sparse update. An empty patch is a no-op
// that still succeeds; a real patch that matched nothing means the row is gone.
func patched(c echo.Context, empty bool, affected int64, err error, notFound error) error {
	if err != nil {
		return respondError(c, err)
	}
	if affected == 0 && !empty {
		return respondError(c, notFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"affected": affected})
}

// deleted writes the outcome of a single-row delete.
func deleted(c echo.Context, affected int64, err error, notFound error) error {
	if err != nil {
		return respondError(c, err)
	}
	if affected == 0 {
		return respondError(c, notFound)
	}
	return c.NoContent(http.StatusNoContent)
}
