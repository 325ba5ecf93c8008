package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltmarket/market-client/internal/api/middleware"
)

// currentUserID returns the subject injected by the Auth middleware. An empty
// subject means the route was mounted without Auth.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.KeyUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
