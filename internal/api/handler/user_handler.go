package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

type UserHandler struct {
	store ports.Marketplace
}

func NewUserHandler(store ports.Marketplace) *UserHandler {
	return &UserHandler{store: store}
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Profile handles GET /users/profile.
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.store.User(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, userResponse{User: user})
}

// UpdateProfile handles PUT /users/profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req domain.ProfileUpdate
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.store.UpdateProfile(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusOK, "Profile updated", userResponse{User: user})
}
