package middleware

import "github.com/labstack/echo/v4"

// Context keys set by JWTAuth.
const (
	ctxOperator = "operator"
	ctxRole     = "role"
)

// Operator returns the authenticated operator's login, or "guest" when the
// request carried no valid token.
func Operator(c echo.Context) string {
	if v, ok := c.Get(ctxOperator).(string); ok && v != "" {
		return v
	}
	return "guest"
}

func role(c echo.Context) string {
	v, _ := c.Get(ctxRole).(string)
	return v
}
