package service

import (
	"github.com/spendly/api/internal/lib/job"
	"github.com/spendly/api/internal/repository"
	"github.com/spendly/api/internal/server"
)

// Services is the container for all business-logic services.
type Services struct {
	Auth    *AuthService
	Users   *UserService
	Records *RecordService
	Job     *job.JobService
}

// NewServices wires services to their repositories and shared resources,
// and registers the record service as the job worker's view refresher.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	userService := NewUserService(repos.Users, authService.Profiles(), s.Job.Client, *s.Logger)

	recordService := NewRecordService(
		authService.Identity(),
		userService,
		repos.Records,
		s.Views,
		s.Job.Client,
		*s.Logger,
	)

	s.Job.RegisterViewRefresher(recordService)

	return &Services{
		Auth:    authService,
		Users:   userService,
		Records: recordService,
		Job:     s.Job,
	}, nil
}
