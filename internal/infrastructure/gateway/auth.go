package gateway

import (
	"context"

	"github.com/voltmarket/market-client/internal/core/ports"
)

// AuthAPI groups the /auth endpoints.
type AuthAPI struct{ c *Client }

func (c *Client) Auth() *AuthAPI { return &AuthAPI{c: c} }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. The success body carries
// data.token and data.user.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*Response, error) {
	return a.c.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, false)
}

// Register handles POST /auth/register.
func (a *AuthAPI) Register(ctx context.Context, in ports.RegisterInput) (*Response, error) {
	return a.c.Post(ctx, "/auth/register", in, false)
}

// Logout handles POST /auth/logout. Callers clear local state whatever the
// outcome.
func (a *AuthAPI) Logout(ctx context.Context) (*Response, error) {
	return a.c.Post(ctx, "/auth/logout", nil, true)
}
