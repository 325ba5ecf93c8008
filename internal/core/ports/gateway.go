package ports

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// Body is a parsed response body as returned by the gateway.
type Body interface {
	Get(path string) gjson.Result
	Decode(path string, v any) error
	Map() map[string]any
}

// AuthGateway is the subset of the API client used by the session
// lifecycle service.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (Body, error)
	Register(ctx context.Context, in RegisterInput) (Body, error)
	Logout(ctx context.Context) (Body, error)
	Profile(ctx context.Context) (Body, error)
	UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (Body, error)
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email           string      `json:"email"           validate:"required,email"`
	Password        string      `json:"password"        validate:"required"`
	ConfirmPassword string      `json:"confirmPassword" validate:"required,eqfield=Password"`
	RoleName        domain.Role `json:"roleName"        validate:"required,oneof=SHOP CUSTOMER ADMIN"`
}
