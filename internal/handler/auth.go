package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tikevents/tikevents/internal/config"
	"github.com/tikevents/tikevents/internal/utils"
)

// AuthHandler issues operator access tokens. There is a single operator
// account, configured through OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH.
type AuthHandler struct {
	Cfg config.Config
}

// NewAuthHandler builds the login handler for the configured operator.
func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type loginResp struct {
	Operator string    `json:"operator"`
	Role     string    `json:"role"`
	Access   tokenPart `json:"access"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	// Run the bcrypt comparison even for an unknown email so both failures
	// take the same time.
	okPass := utils.VerifyPassword(h.Cfg.OperatorPasswordHash, req.Password)
	if email != h.Cfg.OperatorEmail || !okPass {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, email, utils.RoleOperator, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, loginResp{
		Operator: email,
		Role:     utils.RoleOperator,
		Access:   tokenPart{Token: tok.Token, Expires: tok.Exp},
	})
}
