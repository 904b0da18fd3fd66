package handler

import (
	"github.com/paulloo/relivator/internal/procedure"
	"github.com/paulloo/relivator/internal/server"
	"github.com/paulloo/relivator/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around instead of many.
type Handlers struct {
	Health *HealthHandler
	Board  *BoardHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services, builder *procedure.Builder) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Board:  NewBoardHandler(s, services, builder),
	}
}
