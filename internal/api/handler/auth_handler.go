package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voltmarket/market-client/internal/api/middleware"
	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

type AuthHandler struct {
	store     ports.Marketplace
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(store ports.Marketplace, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register handles POST /auth/register. Administrators cannot sign up.
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterInput
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.RoleName == domain.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "admin accounts cannot be registered")
	}

	user, err := h.store.Register(c.Request().Context(), req.Email, req.Password, req.RoleName)
	if err != nil {
		return err
	}
	return h.respondWithToken(c, http.StatusCreated, "Registration successful", user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.store.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.respondWithToken(c, http.StatusOK, "Login successful", user)
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// acknowledges the call.
func (h *AuthHandler) Logout(c echo.Context) error {
	return okMessage(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) respondWithToken(c echo.Context, code int, msg string, user *domain.User) error {
	token, err := middleware.SignToken(h.jwtSecret, user, h.tokenTTL)
	if err != nil {
		return err
	}
	return okMessage(c, code, msg, authResponse{Token: token, User: user})
}
