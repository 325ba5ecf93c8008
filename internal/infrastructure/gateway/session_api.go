package gateway

import (
	"context"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

// sessionAPI exposes the calls the session lifecycle needs through the
// ports.AuthGateway interface.
type sessionAPI struct{ c *Client }

// SessionAPI adapts the client to ports.AuthGateway.
func (c *Client) SessionAPI() ports.AuthGateway { return sessionAPI{c: c} }

func (s sessionAPI) Login(ctx context.Context, email, password string) (ports.Body, error) {
	return asBody(s.c.Auth().Login(ctx, email, password))
}

func (s sessionAPI) Register(ctx context.Context, in ports.RegisterInput) (ports.Body, error) {
	return asBody(s.c.Auth().Register(ctx, in))
}

func (s sessionAPI) Logout(ctx context.Context) (ports.Body, error) {
	return asBody(s.c.Auth().Logout(ctx))
}

func (s sessionAPI) Profile(ctx context.Context) (ports.Body, error) {
	return asBody(s.c.Customer().Profile(ctx))
}

func (s sessionAPI) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (ports.Body, error) {
	return asBody(s.c.Customer().UpdateProfile(ctx, in))
}

func asBody(r *Response, err error) (ports.Body, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}
