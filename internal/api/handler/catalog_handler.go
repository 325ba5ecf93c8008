package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

// CatalogHandler serves the public routes: package catalogue, approved
// listings and customer enquiries.
type CatalogHandler struct {
	store ports.Marketplace
}

func NewCatalogHandler(store ports.Marketplace) *CatalogHandler {
	return &CatalogHandler{store: store}
}

type hasContactedResponse struct {
	HasContacted bool `json:"hasContacted"`
}

func (h *CatalogHandler) Packages(c echo.Context) error {
	pkgs, err := h.store.Packages(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, packagesResponse{Packages: pkgs})
}

// Products lists approved listings; a status filter is ignored.
func (h *CatalogHandler) Products(c echo.Context) error {
	f := domain.FiltersFromValues(c.QueryParams())
	f.Status = string(domain.ProductApproved)

	page, err := h.store.Products(c.Request().Context(), f)
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

// Product returns one approved listing; anything else reads as not found.
func (h *CatalogHandler) Product(c echo.Context) error {
	p, err := h.store.Product(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if p.Status != domain.ProductApproved {
		return domain.ErrNotFound
	}
	return ok(c, http.StatusOK, productResponse{Product: p})
}

func (h *CatalogHandler) CheckContact(c echo.Context) error {
	found, err := h.store.HasContacted(c.Request().Context(), c.Param("productId"), c.QueryParam("customerEmail"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, hasContactedResponse{HasContacted: found})
}

// CreateContact accepts enquiries with or without a session.
func (h *CatalogHandler) CreateContact(c echo.Context) error {
	var req domain.ContactInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ct, err := h.store.CreateContact(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusCreated, "Your request has been sent to the shop", contactResponse{Contact: ct})
}
