package gateway

import (
	"context"
	"errors"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// ErrEmptyID guards operations addressing a resource by id.
var ErrEmptyID = errors.New("id is required")

// ShopAPI groups the endpoints used by the SHOP role. All of them are
// authenticated except the public package catalogue.
type ShopAPI struct{ c *Client }

func (c *Client) Shop() *ShopAPI { return &ShopAPI{c: c} }

func (s *ShopAPI) Wallet(ctx context.Context) (*Response, error) {
	return s.c.Get(ctx, "/wallet", nil, true)
}

func (s *ShopAPI) Deposit(ctx context.Context, amount float64) (*Response, error) {
	return s.c.Post(ctx, "/wallet/deposit", map[string]any{"amount": amount}, true)
}

// AvailablePackages lists the public package catalogue.
func (s *ShopAPI) AvailablePackages(ctx context.Context) (*Response, error) {
	return s.c.Get(ctx, "/packages", nil, false)
}

func (s *ShopAPI) MyPackages(ctx context.Context) (*Response, error) {
	return s.c.Get(ctx, "/packages/shop/my-packages", nil, true)
}

func (s *ShopAPI) PurchasePackage(ctx context.Context, packageID string) (*Response, error) {
	if packageID == "" {
		return nil, ErrEmptyID
	}
	return s.c.Post(ctx, "/packages/purchase", map[string]any{"packageId": packageID}, true)
}

func (s *ShopAPI) MyPosts(ctx context.Context) (*Response, error) {
	return s.c.Get(ctx, "/products/shop/my-products", nil, true)
}

func (s *ShopAPI) CreatePost(ctx context.Context, in domain.ProductInput) (*Response, error) {
	return s.c.Post(ctx, "/products", in, true)
}

func (s *ShopAPI) UpdatePost(ctx context.Context, id string, in domain.ProductInput) (*Response, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return s.c.Put(ctx, "/products/"+pathID(id), in, true)
}

// UpdateProductStatus hides (INACTIVE) or re-shows (APPROVED) a listing.
func (s *ShopAPI) UpdateProductStatus(ctx context.Context, id string, status domain.ProductStatus) (*Response, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return s.c.Put(ctx, "/products/"+pathID(id), map[string]any{"status": status}, true)
}

func (s *ShopAPI) DeletePost(ctx context.Context, id string) (*Response, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return s.c.Delete(ctx, "/products/"+pathID(id), true)
}

// Contacts lists enquiries about the shop's products, optionally filtered.
func (s *ShopAPI) Contacts(ctx context.Context, f domain.Filters) (*Response, error) {
	return s.c.Get(ctx, "/contacts/shop/my-contacts", f.Values(), true)
}

func (s *ShopAPI) UpdateContactStatus(ctx context.Context, id string, status domain.ContactStatus) (*Response, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return s.c.Put(ctx, "/contacts/"+pathID(id)+"/status", map[string]any{"status": status}, true)
}
