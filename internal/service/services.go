package service

import (
	"github.com/paulloo/relivator/internal/cache"
	"github.com/paulloo/relivator/internal/lib/job"
	"github.com/paulloo/relivator/internal/repository"
	"github.com/paulloo/relivator/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	Auth  *AuthService
	Board *BoardService
	Job   *job.JobService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories, c *cache.Cache) (*Services, error) {
	return &Services{
		Auth:  NewAuthService(s),
		Board: NewBoardService(s, repos.Board, c),
		Job:   s.Job,
	}, nil
}
