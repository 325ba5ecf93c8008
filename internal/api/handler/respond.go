package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the success shape of every response: {success, message, data}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Success: true, Data: data})
}

func okMessage(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, envelope{Success: true, Message: msg, Data: data})
}

// bind decodes the request and runs the registered validator.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(v)
}
