package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/voltmarket/market-client/internal/core/domain"
)

var testUser = &domain.User{ID: "64f0c2", Email: "shop@volt.vn", RoleName: domain.RoleShop}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed, err := SignToken("secret", testUser, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(KeyUserID) != "64f0c2" {
			t.Fatalf("user id not set")
		}
		if c.Get(KeyEmail) != "shop@volt.vn" {
			t.Fatalf("email not set")
		}
		if c.Get(KeyRole) != domain.RoleShop {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired, _ := SignToken("secret", testUser, -time.Minute)
	foreign, _ := SignToken("other-secret", testUser, time.Hour)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x", "role": "ADMIN"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"empty bearer":   "Bearer ",
		"garbage token":  "Bearer not-a-token",
		"expired token":  "Bearer " + expired,
		"foreign secret": "Bearer " + foreign,
		"unsigned token": "Bearer " + none,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Auth("secret")(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	signed, _ := SignToken("secret", testUser, time.Hour)

	for header, wantID := range map[string]any{
		"":                 nil,
		"Bearer garbage":   nil,
		"Bearer " + signed: "64f0c2",
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/contacts", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		err := OptionalAuth("secret")(func(c echo.Context) error {
			called = true
			if got := c.Get(KeyUserID); got != wantID {
				t.Fatalf("header %q: user id = %v, want %v", header, got, wantID)
			}
			return nil
		})(c)
		if err != nil || !called {
			t.Fatalf("header %q: expected pass-through, got %v", header, err)
		}
	}
}
