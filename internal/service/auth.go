package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/paulloo/relivator/internal/server"
)

// AuthService initializes the Clerk SDK with the configured secret key so
// the header-authorization middleware and session resolution can verify
// tokens.
type AuthService struct {
	server *server.Server
}

// NewAuthService constructs the AuthService and configures Clerk globally.
func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
