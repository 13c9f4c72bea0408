package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/spendly/api/internal/models"
	"github.com/spendly/api/internal/sqlerr"
)

// Shared test doubles for the service layer.

type fakeIdentity struct {
	subject string
}

func (f fakeIdentity) ResolveIdentity(ctx context.Context) (string, bool) {
	if f.subject == "" {
		return "", false
	}
	return f.subject, true
}

type fakeUserStore struct {
	users map[string]*models.User

	findErr   error
	upsertErr error
	// findMiss forces FindByClerkID to report no rows even when the
	// user exists, simulating a concurrent provision between the find
	// and the upsert.
	findMiss bool

	upsertCalls int
	lastUpsert  *models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]*models.User{}}
	for _, u := range users {
		s.users[u.ClerkUserID] = u
	}
	return s
}

func (s *fakeUserStore) FindByClerkID(ctx context.Context, clerkUserID string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if u, ok := s.users[clerkUserID]; ok && !s.findMiss {
		return u, nil
	}
	return nil, sqlerr.Convert(pgx.ErrNoRows)
}

func (s *fakeUserStore) Upsert(ctx context.Context, user *models.User) (*models.User, bool, error) {
	s.upsertCalls++
	s.lastUpsert = user
	if s.upsertErr != nil {
		return nil, false, s.upsertErr
	}
	if existing, ok := s.users[user.ClerkUserID]; ok {
		return existing, false, nil
	}
	s.users[user.ClerkUserID] = user
	return user, true, nil
}

type fakeProfiles struct {
	profile *Profile
	err     error
	calls   int
}

func (f *fakeProfiles) FetchProfile(ctx context.Context, clerkUserID string) (*Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeRecordStore struct {
	records []models.Record
	amounts []float64

	createErr error
	deleteErr error
	listErr   error

	createCalls int
	lastCreated *models.Record
	deletedID   string
	deletedUser string
	listLimit   int
}

func (s *fakeRecordStore) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	s.createCalls++
	s.lastCreated = record
	if s.createErr != nil {
		return nil, s.createErr
	}
	return record, nil
}

func (s *fakeRecordStore) DeleteOwned(ctx context.Context, recordID, userID string) error {
	s.deletedID = recordID
	s.deletedUser = userID
	return s.deleteErr
}

func (s *fakeRecordStore) ListRecent(ctx context.Context, userID string, limit int) ([]models.Record, error) {
	s.listLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.records) > limit {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func (s *fakeRecordStore) Amounts(ctx context.Context, userID string) ([]float64, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.amounts, nil
}

func (s *fakeRecordStore) AllForUser(ctx context.Context, userID string) ([]models.Record, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

type fakeViews struct {
	invalidated []string
	stored      map[string][]byte
}

func newFakeViews() *fakeViews {
	return &fakeViews{stored: map[string][]byte{}}
}

func (f *fakeViews) InvalidateRootView(ctx context.Context, userID string) {
	f.invalidated = append(f.invalidated, userID)
}

func (f *fakeViews) Store(ctx context.Context, view, userID string, payload []byte) error {
	f.stored[view+":"+userID] = payload
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (f *fakeEnqueuer) typesEnqueued() []string {
	types := make([]string, len(f.tasks))
	for i, task := range f.tasks {
		types[i] = task.Type()
	}
	return types
}
