package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Recovery converts a handler panic into the service's failure envelope. The
// stack goes to the log only; callers never see it.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)

					rid, _ := c.Get("request_id").(string)
					logger.Error().
						Str("request_id", rid).
						Str("panic", fmt.Sprintf("%v", r)).
						Str("stack", string(stack[:n])).
						Msg("panic recovered")

					if c.Response().Committed {
						return
					}
					err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"success": false,
						"error":   "INTERNAL_ERROR",
						"message": "internal server error",
					})
				}
			}()
			return next(c)
		}
	}
}
