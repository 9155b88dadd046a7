package middleware

import (
	"postPilot/pkg/trace"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const traceHeader = "X-Trace-Id"

// TraceMiddleware attaches a trace id to every request context, reusing the
// caller's X-Trace-Id header when present.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(traceHeader)
			if id == "" {
				id = uuid.NewString()
			}

			ctx := trace.NewContext(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(traceHeader, id)

			return next(c)
		}
	}
}
