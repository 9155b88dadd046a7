package middleware

import (
	"net/http"

	"postPilot/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: echo errors keep their code,
// everything else becomes a 500 without leaking internals.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	logger.Error("request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"status", code,
		"error", err,
	)

	if err := c.JSON(code, map[string]string{"message": message}); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
