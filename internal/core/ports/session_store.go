package ports

import (
	"context"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// SessionStore persists the current session across process restarts.
type SessionStore interface {
	// Get returns the stored session, or the zero Session when none is stored
	// or the stored user cannot be decoded. Only storage failures are errors.
	Get(ctx context.Context) (domain.Session, error)
	// Set persists token and user together.
	Set(ctx context.Context, s domain.Session) error
	// Clear removes the session. Safe to call when nothing is stored.
	Clear(ctx context.Context) error
}
