package gateway

import (
	"context"
	"net/url"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// CustomerAPI groups the CUSTOMER endpoints. Catalogue reads are public;
// contact calls authenticate only when a session exists.
type CustomerAPI struct{ c *Client }

func (c *Client) Customer() *CustomerAPI { return &CustomerAPI{c: c} }

func (a *CustomerAPI) Profile(ctx context.Context) (*Response, error) {
	return a.c.Get(ctx, "/users/profile", nil, true)
}

func (a *CustomerAPI) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*Response, error) {
	return a.c.Put(ctx, "/users/profile", in, true)
}

// Products searches approved listings.
func (a *CustomerAPI) Products(ctx context.Context, f domain.Filters) (*Response, error) {
	return a.c.Get(ctx, "/products", f.Values(), false)
}

func (a *CustomerAPI) Product(ctx context.Context, id string) (*Response, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return a.c.Get(ctx, "/products/"+pathID(id), nil, false)
}

// CheckContact asks whether email already enquired about productID.
func (a *CustomerAPI) CheckContact(ctx context.Context, productID, email string) (*Response, error) {
	if productID == "" {
		return nil, ErrEmptyID
	}
	var q url.Values
	if email != "" {
		q = url.Values{"customerEmail": {email}}
	}
	return a.c.Do(ctx, Request{
		Method: "GET",
		Path:   "/contacts/check/" + pathID(productID),
		Query:  q,
		Auth:   a.c.hasToken(ctx),
	})
}

// ContactShop submits an enquiry. It is sent with the bearer token when a
// session exists and anonymously otherwise.
func (a *CustomerAPI) ContactShop(ctx context.Context, productID string, in domain.ContactInput) (*Response, error) {
	if productID == "" {
		return nil, ErrEmptyID
	}
	in.ProductID = productID
	return a.c.Post(ctx, "/contacts", in, a.c.hasToken(ctx))
}
