package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

// Bootstrap decides the first screen from the persisted session. The store is
// read once; later calls return the cached decision.
type Bootstrap struct {
	sessions ports.SessionStore
	timeout  time.Duration
	log      zerolog.Logger

	once  sync.Once
	route domain.Route
}

// NewBootstrap returns a Bootstrap. A positive timeout bounds the store read.
func NewBootstrap(sessions ports.SessionStore, timeout time.Duration, log zerolog.Logger) *Bootstrap {
	return &Bootstrap{
		sessions: sessions,
		timeout:  timeout,
		log:      log.With().Str("component", "bootstrap").Logger(),
	}
}

// InitialRoute returns Login without a usable session, otherwise the landing
// route of the stored role. A failing or slow store lands on Login.
func (b *Bootstrap) InitialRoute(ctx context.Context) domain.Route {
	b.once.Do(func() {
		b.route = b.resolve(ctx)
	})
	return b.route
}

func (b *Bootstrap) resolve(ctx context.Context) domain.Route {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	type result struct {
		session domain.Session
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := b.sessions.Get(ctx)
		done <- result{session: s, err: err}
	}()

	select {
	case <-ctx.Done():
		b.log.Warn().Err(ctx.Err()).Msg("session read timed out, starting at login")
		return domain.RouteLogin
	case r := <-done:
		if r.err != nil {
			b.log.Warn().Err(r.err).Msg("session read failed, starting at login")
			return domain.RouteLogin
		}
		route := domain.RouteForSession(r.session)
		b.log.Debug().Str("route", string(route)).Msg("initial route resolved")
		return route
	}
}
