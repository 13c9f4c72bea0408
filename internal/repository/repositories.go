package repository

import (
	"github.com/spendly/api/internal/server"
)

// Repositories is the container for all repository instances.
type Repositories struct {
	Users   *UsersRepository
	Records *RecordsRepository
}

// NewRepositories constructs the repository container from the shared
// database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:   NewUsersRepository(s.DB.Pool),
		Records: NewRecordsRepository(s.DB.Pool),
	}
}
