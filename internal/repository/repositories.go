package repository

import (
	"github.com/paulloo/relivator/internal/server"
)

// Repositories is the container for all repository instances, built once at
// startup and handed to the service layer.
type Repositories struct {
	Board *BoardRepository
}

// NewRepositories constructs the repository container from the application
// container (the pgx pool lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Board: NewBoardRepository(s),
	}
}
