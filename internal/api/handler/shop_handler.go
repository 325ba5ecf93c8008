package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

// ShopHandler serves the wallet, package, listing and enquiry routes of the
// SHOP role.
type ShopHandler struct {
	store ports.Marketplace
}

func NewShopHandler(store ports.Marketplace) *ShopHandler {
	return &ShopHandler{store: store}
}

type depositRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type purchaseRequest struct {
	PackageID string `json:"packageId" validate:"required"`
}

type contactStatusRequest struct {
	Status domain.ContactStatus `json:"status" validate:"required,oneof=PENDING CONTACTED CLOSED"`
}

type walletResponse struct {
	Wallet domain.Wallet `json:"wallet"`
}

type packagesResponse struct {
	Packages []domain.Package `json:"packages"`
}

type purchaseResponse struct {
	Package domain.Package `json:"package"`
	Wallet  domain.Wallet  `json:"wallet"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page,omitempty"`
	Pages    int              `json:"pages,omitempty"`
}

type productResponse struct {
	Product domain.Product `json:"product"`
}

type contactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

type contactResponse struct {
	Contact domain.Contact `json:"contact"`
}

func (h *ShopHandler) Wallet(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	w, err := h.store.Wallet(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, walletResponse{Wallet: w})
}

func (h *ShopHandler) Deposit(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req depositRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	w, err := h.store.Deposit(c.Request().Context(), shopID, req.Amount)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusOK, "Deposit successful", walletResponse{Wallet: w})
}

func (h *ShopHandler) MyPackages(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	pkgs, err := h.store.ShopPackages(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, packagesResponse{Packages: pkgs})
}

func (h *ShopHandler) PurchasePackage(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	pkg, w, err := h.store.PurchasePackage(c.Request().Context(), shopID, req.PackageID)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusCreated, "Package purchased", purchaseResponse{Package: pkg, Wallet: w})
}

func (h *ShopHandler) MyProducts(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	products, err := h.store.ShopProducts(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, productsResponse{Products: products, Total: len(products)})
}

func (h *ShopHandler) CreateProduct(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req domain.ProductInput
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.store.CreateProduct(c.Request().Context(), shopID, req)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusCreated, "Product submitted for review", productResponse{Product: p})
}

// UpdateProduct handles PUT /products/:id for both content edits and the
// visibility toggle.
func (h *ShopHandler) UpdateProduct(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req ports.ProductPatch
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.store.UpdateProduct(c.Request().Context(), shopID, c.Param("id"), req)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusOK, "Product updated", productResponse{Product: p})
}

func (h *ShopHandler) DeleteProduct(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteProduct(c.Request().Context(), shopID, c.Param("id")); err != nil {
		return err
	}
	return okMessage(c, http.StatusOK, "Product deleted", nil)
}

func (h *ShopHandler) Contacts(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	status := domain.ContactStatus(c.QueryParam("status"))
	contacts, err := h.store.ShopContacts(c.Request().Context(), shopID, status)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, contactsResponse{Contacts: contacts})
}

func (h *ShopHandler) UpdateContactStatus(c echo.Context) error {
	shopID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req contactStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ct, err := h.store.UpdateContactStatus(c.Request().Context(), shopID, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return okMessage(c, http.StatusOK, "Contact updated", contactResponse{Contact: ct})
}
