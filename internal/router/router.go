// Package router initializes the HTTP router (Echo).
//
// It installs the global middleware chain in its required order and mounts
// the route groups, business routes coming from procedure metadata.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/paulloo/relivator/internal/handler"
	"github.com/paulloo/relivator/internal/middleware"
	"github.com/paulloo/relivator/internal/server"
)

// Setup builds the Echo instance.
//
// Middleware order matters:
//
//  1. New Relic starts the transaction (so everything downstream can
//     attach to it)
//  2. Request-ID assigns correlation ids
//  3. ContextEnhancer builds the request-scoped logger (needs both)
//  4. CORS / secure headers / recovery / request logging
//  5. Clerk session parsing
//  6. Tracing attributes and rate limiting, closest to the handlers
func Setup(s *server.Server, mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(mw.Tracing.NewRelicMiddleware())
	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())

	e.Use(mw.Global.CORS())
	e.Use(mw.Global.Secure())
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.RequestLogger())

	e.Use(mw.Auth.Sessions())

	e.Use(mw.Tracing.EnhanceTracing())
	e.Use(mw.RateLimit.Limit())

	registerSystemRoutes(e, h)
	h.Board.Register(e)

	return e
}
