package procedure

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/paulloo/relivator/internal/middleware"
	"github.com/paulloo/relivator/internal/validation"
)

// NewContext builds the per-request procedure context from the Echo context:
// a fresh bag around the request-scoped logger, tagged with the procedure
// name. Called once per request by the adapter, never cached.
func (b *Builder) NewContext(c echo.Context, p *Procedure) *Context {
	procLogger := middleware.GetLogger(c).With().
		Str("procedure", p.Meta().Name).
		Logger()

	return NewContext(&procLogger)
}

// Handle adapts a procedure plus a typed terminal handler into an Echo
// handler: bind and validate the payload, build the per-request context,
// invoke the chain, write the JSON result.
//
// newReq returns a fresh payload value each request (echo's Bind needs a
// pointer). Handle is a free function because methods cannot carry their own
// type parameters.
func Handle[Req validation.Validatable](
	b *Builder,
	p *Procedure,
	status int,
	newReq func() Req,
	handler func(ctx context.Context, pc *Context, req Req) (any, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := newReq()
		if err := validation.BindAndValidate(c, req); err != nil {
			return err
		}

		pc := b.NewContext(c, p)

		result, err := p.Invoke(c.Request().Context(), pc, req, func(ctx context.Context, pc *Context, input any) (any, error) {
			return handler(ctx, pc, input.(Req))
		})
		if err != nil {
			return err
		}

		// Expose the caller's identity to the request logger and tracing
		// middleware, which read it after the handler returns.
		if user := pc.User(); user != nil {
			c.Set(middleware.UserIDKey, user.ID)
		}

		return c.JSON(status, result)
	}
}
