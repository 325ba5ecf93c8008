package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/core/domain"
)

type countingSessions struct {
	memSessions
	reads int
	delay time.Duration
}

func (c *countingSessions) Get(ctx context.Context) (domain.Session, error) {
	c.reads++
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return domain.Session{}, ctx.Err()
		}
	}
	return c.memSessions.Get(ctx)
}

func TestBootstrap_InitialRoute(t *testing.T) {
	cases := []struct {
		name    string
		session domain.Session
		want    domain.Route
	}{
		{"empty store", domain.Session{}, domain.RouteLogin},
		{"token only", domain.Session{Token: "t"}, domain.RouteLogin},
		{"shop", domain.Session{Token: "t", User: &domain.User{RoleName: domain.RoleShop}}, domain.RouteShopHome},
		{"admin", domain.Session{Token: "t", User: &domain.User{RoleName: domain.RoleAdmin}}, domain.RouteAdminHome},
		{"customer", domain.Session{Token: "t", User: &domain.User{RoleName: domain.RoleCustomer}}, domain.RouteCustomerHome},
		{"unknown role", domain.Session{Token: "t", User: &domain.User{RoleName: "MODERATOR"}}, domain.RouteHome},
		{"no role", domain.Session{Token: "t", User: &domain.User{}}, domain.RouteHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBootstrap(&memSessions{session: tc.session}, 0, zerolog.Nop())
			if got := b.InitialRoute(context.Background()); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestBootstrap_ReadsStoreOnce(t *testing.T) {
	store := &countingSessions{memSessions: memSessions{
		session: domain.Session{Token: "t", User: &domain.User{RoleName: domain.RoleShop}},
	}}
	b := NewBootstrap(store, 0, zerolog.Nop())

	first := b.InitialRoute(context.Background())
	store.session = domain.Session{}
	second := b.InitialRoute(context.Background())

	if first != domain.RouteShopHome || second != first {
		t.Fatalf("expected cached ShopHome, got %s then %s", first, second)
	}
	if store.reads != 1 {
		t.Fatalf("expected one store read, got %d", store.reads)
	}
}

func TestBootstrap_StoreErrorLandsOnLogin(t *testing.T) {
	store := &memSessions{getErr: errors.New("corrupted storage")}
	if got := NewBootstrap(store, 0, zerolog.Nop()).InitialRoute(context.Background()); got != domain.RouteLogin {
		t.Fatalf("got %s, want %s", got, domain.RouteLogin)
	}
}

func TestBootstrap_TimeoutLandsOnLogin(t *testing.T) {
	store := &countingSessions{
		memSessions: memSessions{session: domain.Session{Token: "t", User: &domain.User{RoleName: domain.RoleAdmin}}},
		delay:       time.Second,
	}
	b := NewBootstrap(store, 20*time.Millisecond, zerolog.Nop())

	start := time.Now()
	if got := b.InitialRoute(context.Background()); got != domain.RouteLogin {
		t.Fatalf("got %s, want %s", got, domain.RouteLogin)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("timeout not honoured")
	}
}
