package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Liveness handles GET /health; it confirms the process is alive.
func Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
