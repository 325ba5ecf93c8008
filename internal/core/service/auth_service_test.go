package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

type jsonBody string

func (b jsonBody) Get(path string) gjson.Result { return gjson.Get(string(b), path) }
func (b jsonBody) Decode(path string, v any) error {
	res := b.Get(path)
	if !res.Exists() {
		return fmt.Errorf("no %q", path)
	}
	return json.Unmarshal([]byte(res.Raw), v)
}
func (b jsonBody) Map() map[string]any {
	m := map[string]any{}
	_ = json.Unmarshal([]byte(b), &m)
	return m
}

type stubGateway struct {
	body  jsonBody
	err   error
	calls []string

	lastRegister ports.RegisterInput
	lastProfile  domain.ProfileUpdate
}

func (g *stubGateway) reply(name string) (ports.Body, error) {
	g.calls = append(g.calls, name)
	if g.err != nil {
		return nil, g.err
	}
	return g.body, nil
}

func (g *stubGateway) Login(context.Context, string, string) (ports.Body, error) {
	return g.reply("login")
}

func (g *stubGateway) Register(_ context.Context, in ports.RegisterInput) (ports.Body, error) {
	g.lastRegister = in
	return g.reply("register")
}

func (g *stubGateway) Logout(context.Context) (ports.Body, error) { return g.reply("logout") }

func (g *stubGateway) Profile(context.Context) (ports.Body, error) { return g.reply("profile") }

func (g *stubGateway) UpdateProfile(_ context.Context, in domain.ProfileUpdate) (ports.Body, error) {
	g.lastProfile = in
	return g.reply("updateProfile")
}

type memSessions struct {
	session  domain.Session
	getErr   error
	clearErr error
	cleared  int
}

func (m *memSessions) Get(context.Context) (domain.Session, error) { return m.session, m.getErr }

func (m *memSessions) Set(_ context.Context, s domain.Session) error {
	if s.IsZero() {
		return domain.ErrInvalidSession
	}
	m.session = s
	return nil
}

func (m *memSessions) Clear(context.Context) error {
	m.cleared++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.session = domain.Session{}
	return nil
}

const loginOK = `{"success":true,"data":{"token":"jwt-1","user":{"_id":"u1","email":"shop@volt.vn","roleName":"SHOP"}}}`

func TestAuthService_Login_PersistsSession(t *testing.T) {
	api := &stubGateway{body: loginOK}
	store := &memSessions{}
	svc := NewAuthService(api, store, zerolog.Nop())

	s, err := svc.Login(context.Background(), " shop@volt.vn ", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if s.Token != "jwt-1" || s.User.ID != "u1" || s.Role() != domain.RoleShop {
		t.Fatalf("unexpected session: %+v / %+v", s, s.User)
	}
	if store.session.Token != "jwt-1" {
		t.Fatalf("session not persisted: %+v", store.session)
	}
	if domain.RouteForSession(store.session) != domain.RouteShopHome {
		t.Fatalf("expected shop landing after login")
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	api := &stubGateway{body: loginOK}
	svc := NewAuthService(api, &memSessions{}, zerolog.Nop())

	for _, tc := range []struct{ email, password string }{
		{"", "secret"},
		{"shop@volt.vn", ""},
		{"   ", "secret"},
	} {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Login(%q, %q): expected ErrInvalidInput, got %v", tc.email, tc.password, err)
		}
	}
	if len(api.calls) != 0 {
		t.Fatalf("invalid input must not reach the network, got %v", api.calls)
	}
}

func TestAuthService_Login_AcceptsNonEmailLogin(t *testing.T) {
	api := &stubGateway{body: loginOK}
	svc := NewAuthService(api, &memSessions{}, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "shop-01", "secret"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if len(api.calls) != 1 || api.calls[0] != "login" {
		t.Fatalf("expected the backend to judge the login, got calls %v", api.calls)
	}
}

func TestAuthService_Login_MissingToken(t *testing.T) {
	store := &memSessions{}
	svc := NewAuthService(&stubGateway{body: `{"success":true,"data":{"user":{}}}`}, store, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "a@b.com", "x"); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if !store.session.IsZero() {
		t.Fatalf("nothing should be stored, got %+v", store.session)
	}
}

func TestAuthService_Login_WithoutUserStoresEmptyUser(t *testing.T) {
	store := &memSessions{}
	svc := NewAuthService(&stubGateway{body: `{"success":true,"data":{"token":"jwt-2"}}`}, store, zerolog.Nop())

	s, err := svc.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if s.IsZero() || domain.RouteForSession(s) != domain.RouteHome {
		t.Fatalf("expected role-less session landing on Home, got %+v", s)
	}
}

func TestAuthService_Login_PropagatesAPIError(t *testing.T) {
	apiErr := &domain.APIError{Message: "Invalid email or password", Status: 401}
	store := &memSessions{}
	svc := NewAuthService(&stubGateway{err: apiErr}, store, zerolog.Nop())

	_, err := svc.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, apiErr) || !domain.IsUnauthorized(err) {
		t.Fatalf("expected the API error back, got %v", err)
	}
	if !store.session.IsZero() {
		t.Fatalf("failed login must not store a session")
	}
}

func TestAuthService_Register(t *testing.T) {
	api := &stubGateway{body: `{"success":true,"data":{"token":"jwt-3","user":{"email":"c@d.com","roleName":"CUSTOMER"}}}`}
	store := &memSessions{}
	svc := NewAuthService(api, store, zerolog.Nop())

	in := ports.RegisterInput{Email: "c@d.com", Password: "p4ss", ConfirmPassword: "p4ss", RoleName: domain.RoleCustomer}
	s, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if s.Role() != domain.RoleCustomer || store.session.Token != "jwt-3" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if api.lastRegister != in {
		t.Fatalf("form not forwarded: %+v", api.lastRegister)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	api := &stubGateway{body: loginOK}
	svc := NewAuthService(api, &memSessions{}, zerolog.Nop())

	cases := map[string]ports.RegisterInput{
		"mismatched passwords": {Email: "c@d.com", Password: "a", ConfirmPassword: "b", RoleName: domain.RoleShop},
		"unknown role":         {Email: "c@d.com", Password: "a", ConfirmPassword: "a", RoleName: "MODERATOR"},
		"missing email":        {Password: "a", ConfirmPassword: "a", RoleName: domain.RoleShop},
	}
	for name, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	if len(api.calls) != 0 {
		t.Fatalf("invalid input must not reach the network, got %v", api.calls)
	}
}

func TestAuthService_Logout_ClearsEvenWhenServerFails(t *testing.T) {
	store := &memSessions{session: domain.Session{Token: "t", User: &domain.User{}}}
	api := &stubGateway{err: domain.NewNetworkError("cannot reach server", errors.New("refused"))}
	svc := NewAuthService(api, store, zerolog.Nop())

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if store.cleared != 1 || !store.session.IsZero() {
		t.Fatalf("expected local session cleared, got %+v", store.session)
	}
	if len(api.calls) != 1 || api.calls[0] != "logout" {
		t.Fatalf("expected one server logout attempt, got %v", api.calls)
	}
}

func TestAuthService_Logout_ReportsStoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewAuthService(&stubGateway{body: `{}`}, &memSessions{clearErr: boom}, zerolog.Nop())

	if err := svc.Logout(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthService_SyncProfile_KeepsToken(t *testing.T) {
	store := &memSessions{session: domain.Session{Token: "jwt-1", User: &domain.User{Email: "c@d.com"}}}
	api := &stubGateway{body: `{"success":true,"data":{"user":{"email":"c@d.com","roleName":"CUSTOMER","fullName":"Nguyễn Văn A"}}}`}
	svc := NewAuthService(api, store, zerolog.Nop())

	u, err := svc.SyncProfile(context.Background())
	if err != nil {
		t.Fatalf("SyncProfile returned error: %v", err)
	}
	if u.FullName != "Nguyễn Văn A" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if store.session.Token != "jwt-1" || store.session.User.FullName != "Nguyễn Văn A" {
		t.Fatalf("stored session not refreshed: %+v / %+v", store.session, store.session.User)
	}
}

func TestAuthService_SyncProfile_SignedOutStoresNothing(t *testing.T) {
	store := &memSessions{}
	api := &stubGateway{body: `{"success":true,"data":{"user":{"email":"c@d.com"}}}`}
	svc := NewAuthService(api, store, zerolog.Nop())

	if _, err := svc.SyncProfile(context.Background()); err != nil {
		t.Fatalf("SyncProfile returned error: %v", err)
	}
	if !store.session.IsZero() {
		t.Fatalf("signed-out sync must not create a session, got %+v", store.session)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	store := &memSessions{session: domain.Session{Token: "jwt-1", User: &domain.User{Email: "c@d.com"}}}
	api := &stubGateway{body: `{"success":true,"data":{"user":{"email":"c@d.com","phoneNumber":"0901234567"}}}`}
	svc := NewAuthService(api, store, zerolog.Nop())

	blank := "  "
	u, err := svc.UpdateProfile(context.Background(), domain.ProfileUpdate{PhoneNumber: " 0901234567 ", DateOfBirth: &blank})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if api.lastProfile.PhoneNumber != "0901234567" || api.lastProfile.DateOfBirth != nil {
		t.Fatalf("expected trimmed form with null date, got %+v", api.lastProfile)
	}
	if u.PhoneNumber != "0901234567" || store.session.User.PhoneNumber != "0901234567" {
		t.Fatalf("stored user not refreshed: %+v", store.session.User)
	}

	// A reply without data.user leaves the stored user alone.
	api.body = `{"success":true,"message":"ok"}`
	u, err = svc.UpdateProfile(context.Background(), domain.ProfileUpdate{Address: "Hà Nội"})
	if err != nil || u != nil {
		t.Fatalf("expected nil user without error, got %+v %v", u, err)
	}
	if store.session.User.PhoneNumber != "0901234567" {
		t.Fatalf("stored user unexpectedly replaced: %+v", store.session.User)
	}
}
