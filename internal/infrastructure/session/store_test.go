package session

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/core/domain"
)

type failingKV struct{ err error }

func (f failingKV) GetMany(context.Context, ...string) (map[string]string, error) { return nil, f.err }
func (f failingKV) SetMany(context.Context, map[string]string) error { return f.err }
func (f failingKV) DeleteMany(context.Context, ...string) error { return f.err }

func newSQLiteKV(t *testing.T) *SQLiteKV {
	t.Helper()
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	kv, err := NewSQLiteKV(ctx, db)
	if err != nil {
		t.Fatalf("init kv: %v", err)
	}
	return kv
}

func backends(t *testing.T) map[string]KeyValue {
	return map[string]KeyValue{
		"memory": NewMemoryKV(),
		"sqlite": newSQLiteKV(t),
	}
}

func shopSession() domain.Session {
	return domain.Session{
		Token: "t1",
		User: &domain.User{
			ID:       "64f0c2",
			Email:    "a@b.com",
			RoleName: domain.RoleShop,
			FullName: "Cửa hàng Pin Xanh",
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(kv, zerolog.Nop())

			want := shopSession()
			if err := store.Set(ctx, want); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := store.Get(ctx)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Token != want.Token || !reflect.DeepEqual(got.User, want.User) {
				t.Fatalf("round trip mismatch: got %+v / %+v", got, got.User)
			}

			// Overwrite replaces both halves.
			next := domain.Session{Token: "t2", User: &domain.User{Email: "c@d.com", RoleName: domain.RoleCustomer}}
			if err := store.Set(ctx, next); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, _ = store.Get(ctx)
			if got.Token != "t2" || got.User.RoleName != domain.RoleCustomer || got.User.ID != "" {
				t.Fatalf("overwrite mismatch: %+v / %+v", got, got.User)
			}
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(kv, zerolog.Nop())

			// Clearing an empty store is fine.
			if err := store.Clear(ctx); err != nil {
				t.Fatalf("clear on empty: %v", err)
			}

			if err := store.Set(ctx, shopSession()); err != nil {
				t.Fatalf("set: %v", err)
			}
			for i := 0; i < 2; i++ {
				if err := store.Clear(ctx); err != nil {
					t.Fatalf("clear #%d: %v", i+1, err)
				}
				got, err := store.Get(ctx)
				if err != nil {
					t.Fatalf("get: %v", err)
				}
				if !got.IsZero() || got.Token != "" || got.User != nil {
					t.Fatalf("expected empty session after clear #%d, got %+v", i+1, got)
				}
			}
		})
	}
}

func TestStore_CorruptUserDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.SetMany(ctx, map[string]string{TokenKey: "t1", UserKey: "{not json"})

	got, err := NewStore(kv, zerolog.Nop()).Get(ctx)
	if err != nil {
		t.Fatalf("expected no error for corrupt user, got %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected empty session, got %+v", got)
	}
}

func TestStore_HalfSessionReadsAsEmpty(t *testing.T) {
	ctx := context.Background()

	tokenOnly := NewMemoryKV()
	_ = tokenOnly.SetMany(ctx, map[string]string{TokenKey: "t1"})
	if got, _ := NewStore(tokenOnly, zerolog.Nop()).Get(ctx); !got.IsZero() {
		t.Fatalf("token without user should read as empty, got %+v", got)
	}

	userOnly := NewMemoryKV()
	_ = userOnly.SetMany(ctx, map[string]string{UserKey: `{"email":"a@b.com"}`})
	if got, _ := NewStore(userOnly, zerolog.Nop()).Get(ctx); !got.IsZero() {
		t.Fatalf("user without token should read as empty, got %+v", got)
	}

	nullUser := NewMemoryKV()
	_ = nullUser.SetMany(ctx, map[string]string{TokenKey: "t1", UserKey: "null"})
	if got, _ := NewStore(nullUser, zerolog.Nop()).Get(ctx); !got.IsZero() {
		t.Fatalf("null user should read as empty, got %+v", got)
	}
}

func TestStore_EmptyUserObjectIsASession(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.SetMany(ctx, map[string]string{TokenKey: "t1", UserKey: "{}"})

	got, err := NewStore(kv, zerolog.Nop()).Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsZero() || got.Role() != "" {
		t.Fatalf("expected authenticated session without role, got %+v", got)
	}
}

func TestStore_SetRejectsHalfSession(t *testing.T) {
	store := NewStore(NewMemoryKV(), zerolog.Nop())
	ctx := context.Background()

	if err := store.Set(ctx, domain.Session{Token: "t1"}); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if err := store.Set(ctx, domain.Session{User: &domain.User{}}); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestStore_PropagatesStorageErrors(t *testing.T) {
	boom := errors.New("disk full")
	store := NewStore(failingKV{err: boom}, zerolog.Nop())
	ctx := context.Background()

	if _, err := store.Get(ctx); !errors.Is(err, boom) {
		t.Fatalf("get: expected wrapped storage error, got %v", err)
	}
	if err := store.Set(ctx, shopSession()); !errors.Is(err, boom) {
		t.Fatalf("set: expected wrapped storage error, got %v", err)
	}
	if err := store.Clear(ctx); !errors.Is(err, boom) {
		t.Fatalf("clear: expected wrapped storage error, got %v", err)
	}
}

func TestStore_ConcurrentReadsDuringWrites(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(kv, zerolog.Nop())

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 25; j++ {
						got, err := store.Get(ctx)
						if err != nil {
							t.Errorf("get: %v", err)
							return
						}
						if !got.IsZero() && (got.Token != "t1" || got.User.Email != "a@b.com") {
							t.Errorf("torn session: %+v", got)
							return
						}
					}
				}()
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					if err := store.Set(ctx, shopSession()); err != nil {
						t.Errorf("set: %v", err)
						return
					}
					if err := store.Clear(ctx); err != nil {
						t.Errorf("clear: %v", err)
						return
					}
				}
			}()
			wg.Wait()
		})
	}
}

func TestOpen_LocalBackends(t *testing.T) {
	ctx := context.Background()
	cases := []OpenOptions{
		{Backend: BackendMemory},
		{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "open.db")},
	}
	for _, opts := range cases {
		t.Run(opts.Backend, func(t *testing.T) {
			store, closeFn, err := Open(ctx, opts, zerolog.Nop())
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer func() {
				if err := closeFn(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if err := store.Set(ctx, shopSession()); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := store.Get(ctx)
			if err != nil || got.Token != "t1" {
				t.Fatalf("get: %+v, %v", got, err)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, closeFn, err := Open(context.Background(), OpenOptions{Backend: "etcd"}, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if closeFn == nil {
		t.Fatalf("close function must never be nil")
	}
}
