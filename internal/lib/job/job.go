// Package job provides background job processing using Asynq, a
// Redis-backed queue. Producers enqueue tasks through the Client; the
// embedded worker server consumes them.
//
// Two task types exist: the welcome email sent on first-time user
// provisioning, and the view revalidation that recomputes a user's
// cached dashboard views after a mutation.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/spendly/api/internal/config"
)

// JobService holds the Asynq client for enqueueing and the worker server
// that processes tasks.
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the configured Redis.
// Queue weights give critical tasks the larger worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
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
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server. Handlers
// that need application services must be wired with InitHandlers and
// RegisterViewRefresher before Start.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskViewRevalidate, j.handleViewRevalidateTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the worker server and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
