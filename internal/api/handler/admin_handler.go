package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

type AdminHandler struct {
	store ports.Marketplace
}

func NewAdminHandler(store ports.Marketplace) *AdminHandler {
	return &AdminHandler{store: store}
}

type banRequest struct {
	IsBanned bool `json:"isBanned"`
}

type reviewRequest struct {
	Status         domain.ProductStatus `json:"status"         validate:"required,oneof=APPROVED REJECTED"`
	RejectedReason string               `json:"rejectedReason" validate:"required_if=Status REJECTED"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

func (h *AdminHandler) Stats(c echo.Context) error {
	st, err := h.store.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, st)
}

func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.store.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, usersResponse{Users: users})
}

func (h *AdminHandler) BanUser(c echo.Context) error {
	var req banRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.store.SetBanned(c.Request().Context(), c.Param("id"), req.IsBanned)
	if err != nil {
		return err
	}
	msg := "User unbanned"
	if user.IsBanned {
		msg = "User banned"
	}
	return okMessage(c, http.StatusOK, msg, userResponse{User: user})
}

// Products lists listings in every status, filterable by status.
func (h *AdminHandler) Products(c echo.Context) error {
	page, err := h.store.Products(c.Request().Context(), domain.FiltersFromValues(c.QueryParams()))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, productsResponse{
		Products: page.Products,
		Total:    page.Total,
		Page:     page.Page,
		Pages:    page.Pages,
	})
}

// ReviewProduct handles PUT /products/:id/approve.
func (h *AdminHandler) ReviewProduct(c echo.Context) error {
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.store.ReviewProduct(c.Request().Context(), c.Param("id"), req.Status, req.RejectedReason)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusOK, "Product "+string(p.Status), productResponse{Product: p})
}

func (h *AdminHandler) Revenue(c echo.Context) error {
	rev, err := h.store.Revenue(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, rev)
}
