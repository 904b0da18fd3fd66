// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed queue: the client enqueues tasks, the server runs
// workers that pull and execute them. Emails (board invitations) are the
// only job family today; the weighted queues leave room for more.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/paulloo/relivator/internal/config"
	"github.com/paulloo/relivator/internal/lib/email"
)

// JobService holds the Asynq client (enqueue) and server (execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	email  *email.Client
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the Redis instance from cfg.
// Queue weights give important emails the bulk of worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		email:  email.NewClient(cfg, logger),
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server. asynq's
// Start returns once workers are running; it does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBoardInvite, j.handleBoardInviteTask)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

// Stop gracefully stops the workers and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
