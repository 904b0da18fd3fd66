package handler

import (
	"github.com/paulloo/relivator/internal/server"
)

// Handler holds the shared application dependencies concrete handlers embed.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct only
// carries a pointer, so copies are cheap and share the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}
