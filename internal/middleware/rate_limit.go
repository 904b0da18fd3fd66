package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/paulloo/relivator/internal/errs"
	"github.com/paulloo/relivator/internal/server"
)

// RateLimitMiddleware enforces a per-IP request rate and records limit hits
// as New Relic custom events for alerting.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns Echo's in-memory rate limiter keyed by client IP. Exceeding
// the limit yields the application's 429 error shape through the global
// error handler.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(
			rate.Limit(r.server.Config.Server.RateLimitRPS),
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			return &errs.HTTPError{
				Code:    "RATE_LIMITED",
				Message: "Too many requests, slow down",
				Status:  http.StatusTooManyRequests,
			}
		},
	})
}

// RecordRateLimitHit emits a custom event when a request is rejected, so
// bursts are visible in APM without log scraping.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
