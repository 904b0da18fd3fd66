package middleware

import (
	"encoding/json"
	"net/http"

	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/paulloo/relivator/internal/server"
)

// AuthMiddleware wires Clerk session parsing into the request pipeline.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// Sessions returns middleware that parses the Authorization header through
// Clerk and stores session claims on the request context.
//
// It deliberately does NOT require a session: requests without an
// Authorization header pass through anonymously, and the auth procedure
// step decides whether a session is mandatory for a given procedure. Only a
// present-but-invalid token is rejected here, with a JSON 401.
func (auth *AuthMiddleware) Sessions() echo.MiddlewareFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)

				response := map[string]any{
					"code":     "UNAUTHORIZED",
					"message":  "Invalid session token",
					"status":   http.StatusUnauthorized,
					"override": false,
				}

				if err := json.NewEncoder(w).Encode(response); err != nil {
					auth.server.Logger.Error().
						Err(err).
						Str("function", "Sessions").
						Msg("failed to write JSON response")
				}
			})),
		),
	)
}
