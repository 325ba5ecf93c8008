package gateway

import (
	"context"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// AdminAPI groups the ADMIN endpoints; every call is authenticated.
type AdminAPI struct{ c *Client }

func (c *Client) Admin() *AdminAPI { return &AdminAPI{c: c} }

type reviewRequest struct {
	Status         domain.ProductStatus `json:"status"`
	RejectedReason string               `json:"rejectedReason,omitempty"`
}

func (a *AdminAPI) Stats(ctx context.Context) (*Response, error) {
	return a.c.Get(ctx, "/admin/stats", nil, true)
}

func (a *AdminAPI) Users(ctx context.Context) (*Response, error) {
	return a.c.Get(ctx, "/admin/users", nil, true)
}

// BanUser sets the ban flag; the screens toggle it from the current value.
func (a *AdminAPI) BanUser(ctx context.Context, userID string, banned bool) (*Response, error) {
	if userID == "" {
		return nil, ErrEmptyID
	}
	return a.c.Put(ctx, "/admin/users/"+pathID(userID)+"/ban", map[string]any{"isBanned": banned}, true)
}

func (a *AdminAPI) Products(ctx context.Context, f domain.Filters) (*Response, error) {
	return a.c.Get(ctx, "/admin/products", f.Values(), true)
}

// ReviewProduct handles PUT /products/:id/approve with an explicit verdict.
func (a *AdminAPI) ReviewProduct(ctx context.Context, productID string, status domain.ProductStatus, reason string) (*Response, error) {
	if productID == "" {
		return nil, ErrEmptyID
	}
	return a.c.Put(ctx, "/products/"+pathID(productID)+"/approve",
		reviewRequest{Status: status, RejectedReason: reason}, true)
}

func (a *AdminAPI) ApproveProduct(ctx context.Context, productID string) (*Response, error) {
	return a.ReviewProduct(ctx, productID, domain.ProductApproved, "")
}

func (a *AdminAPI) RejectProduct(ctx context.Context, productID, reason string) (*Response, error) {
	return a.ReviewProduct(ctx, productID, domain.ProductRejected, reason)
}

func (a *AdminAPI) Revenue(ctx context.Context) (*Response, error) {
	return a.c.Get(ctx, "/admin/revenue", nil, true)
}
