package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/bcrypt"

	"github.com/voltmarket/market-client/internal/api"
	"github.com/voltmarket/market-client/internal/core/service"
	"github.com/voltmarket/market-client/internal/infrastructure/gateway"
	"github.com/voltmarket/market-client/internal/infrastructure/memstore"
	"github.com/voltmarket/market-client/internal/infrastructure/session"
)

type backend struct {
	srv  *httptest.Server
	hits atomic.Int64
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	store, err := memstore.New(memstore.Options{
		AdminEmail:    "admin@volt.vn",
		AdminPassword: "admin-pass",
		BcryptCost:    bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("memstore: %v", err)
	}
	router := api.NewRouter(store, api.Options{JWTSecret: "cli-secret", TokenTTL: time.Hour, Log: zerolog.Nop()})

	b := &backend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

// device is one CLI installation with its own session store.
type device struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newDevice(baseURL string) *device {
	sessions := session.NewStore(session.NewMemoryKV(), zerolog.Nop())
	client := gateway.New(gateway.Config{BaseURL: baseURL, Platform: gateway.PlatformWeb}, sessions, zerolog.Nop())

	d := &device{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	d.app = New(Deps{
		Client: client,
		Auth:   service.NewAuthService(client.SessionAPI(), sessions, zerolog.Nop()),
		Boot:   service.NewBootstrap(sessions, 0, zerolog.Nop()),
		Stdout: d.stdout,
		Stderr: d.stderr,
		Log:    zerolog.Nop(),
	})
	return d
}

// run executes one command and returns its stdout.
func (d *device) run(t *testing.T, wantCode int, args ...string) string {
	t.Helper()
	d.stdout.Reset()
	d.stderr.Reset()
	if code := d.app.Run(context.Background(), args); code != wantCode {
		t.Fatalf("%v: exit %d, want %d\nstdout: %s\nstderr: %s", args, code, wantCode, d.stdout, d.stderr)
	}
	return d.stdout.String()
}

func TestRun_Usage(t *testing.T) {
	d := newDevice("http://127.0.0.1:1")

	d.run(t, ExitUsage)
	if !strings.Contains(d.stderr.String(), "usage: marketctl") {
		t.Fatalf("expected usage text, got %q", d.stderr)
	}

	d.run(t, ExitUsage, "teleport")
	if !strings.Contains(d.stderr.String(), `unknown command "teleport"`) {
		t.Fatalf("expected unknown command message, got %q", d.stderr)
	}

	d.run(t, ExitOK, "help")
	d.run(t, ExitUsage, "login", "-bogus")
}

func TestRun_RouteOnFreshDevice(t *testing.T) {
	d := newDevice("http://127.0.0.1:1")
	out := d.run(t, ExitOK, "route")
	if got := gjson.Get(out, "route").String(); got != "Login" {
		t.Fatalf("expected Login, got %q", got)
	}
}

func TestRun_ShopFlow(t *testing.T) {
	b := newBackend(t)
	shop := newDevice(b.srv.URL + "/api")

	out := shop.run(t, ExitOK, "register", "-email", "shop@volt.vn", "-password", "pw", "-confirm", "pw", "-role", "shop")
	if got := gjson.Get(out, "route").String(); got != "ShopHome" {
		t.Fatalf("register should land on ShopHome, got %s", out)
	}
	if got := gjson.Get(shop.run(t, ExitOK, "route"), "route").String(); got != "ShopHome" {
		t.Fatalf("route after register: %q", got)
	}

	who := shop.run(t, ExitOK, "whoami")
	if !gjson.Get(who, "authenticated").Bool() || gjson.Get(who, "user.email").String() != "shop@volt.vn" {
		t.Fatalf("unexpected whoami: %s", who)
	}
	if !gjson.Get(who, "expiresAt").Exists() || gjson.Get(who, "expired").Bool() {
		t.Fatalf("expected a live expiry, got %s", who)
	}

	shop.run(t, ExitOK, "deposit", "-amount", "100000")
	if out := shop.run(t, ExitOK, "buy", "-id", "pkg-basic"); !gjson.Get(out, "success").Bool() {
		t.Fatalf("purchase failed: %s", out)
	}
	shop.run(t, ExitOK, "post-create", "-title", "Pin LFP 48V", "-price", "2500000", "-stock", "3", "-images", "a.jpg, b.jpg")

	posts := shop.run(t, ExitOK, "my-posts")
	if got := gjson.Get(posts, "data.products.0.title").String(); got != "Pin LFP 48V" {
		t.Fatalf("expected created post, got %s", posts)
	}
	if got := gjson.Get(posts, "data.products.0.images.#").Int(); got != 2 {
		t.Fatalf("expected 2 images, got %d", got)
	}

	out = shop.run(t, ExitOK, "logout")
	if got := gjson.Get(out, "route").String(); got != "Login" {
		t.Fatalf("logout should route to Login, got %s", out)
	}
	if gjson.Get(shop.run(t, ExitOK, "whoami"), "authenticated").Bool() {
		t.Fatalf("expected signed out after logout")
	}
}

func TestRun_ModerationAndEnquiry(t *testing.T) {
	b := newBackend(t)
	base := b.srv.URL + "/api"

	shop := newDevice(base)
	shop.run(t, ExitOK, "register", "-email", "shop@volt.vn", "-password", "pw", "-confirm", "pw", "-role", "SHOP")
	shop.run(t, ExitOK, "deposit", "-amount", "50000")
	shop.run(t, ExitOK, "buy", "-id", "pkg-basic")
	created := shop.run(t, ExitOK, "post-create", "-title", "Xe điện mini", "-price", "9000000", "-category", "electric_scooter")
	id := gjson.Get(created, "data.product._id").String()
	if id == "" {
		t.Fatalf("no product id in %s", created)
	}

	admin := newDevice(base)
	if out := admin.run(t, ExitOK, "login", "-email", "admin@volt.vn", "-password", "admin-pass"); gjson.Get(out, "route").String() != "AdminHome" {
		t.Fatalf("admin should land on AdminHome, got %s", out)
	}
	pending := admin.run(t, ExitOK, "admin-products", "-status", "PENDING")
	if got := gjson.Get(pending, "data.products.#").Int(); got != 1 {
		t.Fatalf("expected 1 pending listing, got %s", pending)
	}
	admin.run(t, ExitUsage, "admin-reject", "-id", id)
	admin.run(t, ExitOK, "admin-approve", "-id", id)

	guest := newDevice(base)
	if got := gjson.Get(guest.run(t, ExitOK, "products"), "data.products.#").Int(); got != 1 {
		t.Fatalf("expected the approved listing to be public, got %d", got)
	}
	guest.run(t, ExitOK, "contact", "-id", id, "-name", "Lan", "-phone", "0901", "-email", "lan@mail.vn")
	check := guest.run(t, ExitOK, "contact-check", "-id", id, "-email", "lan@mail.vn")
	if !gjson.Get(check, "data.hasContacted").Bool() {
		t.Fatalf("expected hasContacted, got %s", check)
	}

	enquiries := shop.run(t, ExitOK, "contacts")
	contactID := gjson.Get(enquiries, "data.contacts.0._id").String()
	if contactID == "" {
		t.Fatalf("shop should see the enquiry, got %s", enquiries)
	}
	shop.run(t, ExitOK, "contact-status", "-id", contactID, "-status", "contacted")
}

func TestRun_ValidationFailsBeforeNetwork(t *testing.T) {
	b := newBackend(t)
	d := newDevice(b.srv.URL + "/api")

	d.run(t, ExitError, "post-create", "-price", "0")
	if msg := d.stderr.String(); !strings.Contains(msg, "title is required") || strings.Contains(msg, "invalid input") {
		t.Fatalf("unexpected validation message %q", msg)
	}

	d.run(t, ExitError, "login", "-password", "x")
	d.run(t, ExitError, "contact", "-id", "p1", "-name", "Lan", "-phone", "0901", "-email", "bad")

	if n := b.hits.Load(); n != 0 {
		t.Fatalf("expected no backend calls, got %d", n)
	}
}

func TestRun_UnauthorizedPrintsHint(t *testing.T) {
	b := newBackend(t)
	d := newDevice(b.srv.URL + "/api")

	d.run(t, ExitError, "wallet")
	if !strings.Contains(d.stderr.String(), "status 401") || !strings.Contains(d.stderr.String(), "hint:") {
		t.Fatalf("expected 401 with hint, got %q", d.stderr)
	}
}

func TestRun_NetworkError(t *testing.T) {
	d := newDevice("http://127.0.0.1:1/api")
	d.run(t, ExitError, "products")
	if !strings.Contains(d.stderr.String(), "Cannot connect to the server") {
		t.Fatalf("expected connection message, got %q", d.stderr)
	}
}

func TestRun_MissingRequiredFlag(t *testing.T) {
	d := newDevice("http://127.0.0.1:1")
	for _, args := range [][]string{
		{"buy"},
		{"post-delete"},
		{"post-status", "-id", "p1"},
		{"admin-ban"},
		{"contact-check", "-id", "p1"},
	} {
		d.run(t, ExitUsage, args...)
		if !strings.Contains(d.stderr.String(), "missing") {
			t.Errorf("%v: expected missing flag message, got %q", args, d.stderr)
		}
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-only"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, ok := tokenExpiry(signed)
	if !ok || !got.Equal(exp) {
		t.Fatalf("expected %v, got %v (%v)", exp, got, ok)
	}

	if _, ok := tokenExpiry("opaque-token"); ok {
		t.Fatalf("opaque tokens have no expiry")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a.jpg, ,b.jpg,, c.jpg ")
	want := []string{"a.jpg", "b.jpg", "c.jpg"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if splitList("") != nil {
		t.Fatalf("empty input should yield nil")
	}
}
