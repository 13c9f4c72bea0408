package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/spendly/api/internal/models"
)

// IdentityResolver resolves the caller's external identity from the
// request context. ok is false when the request carries no valid
// session.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context) (clerkUserID string, ok bool)
}

// Profile is the subset of identity-provider profile data used to
// provision a local user.
type Profile struct {
	Email    string
	Name     string
	ImageURL string
}

// ProfileFetcher retrieves profile data for an authenticated subject
// from the identity provider.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, clerkUserID string) (*Profile, error)
}

// UserStore is the persistence surface for local users.
type UserStore interface {
	FindByClerkID(ctx context.Context, clerkUserID string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) (stored *models.User, created bool, err error)
}

// RecordStore is the persistence surface for expense records.
type RecordStore interface {
	Create(ctx context.Context, record *models.Record) (*models.Record, error)
	DeleteOwned(ctx context.Context, recordID, userID string) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Record, error)
	Amounts(ctx context.Context, userID string) ([]float64, error)
	AllForUser(ctx context.Context, userID string) ([]models.Record, error)
}

// ViewCache is the cached-view surface mutations invalidate and the
// revalidation job warms.
type ViewCache interface {
	InvalidateRootView(ctx context.Context, userID string)
	Store(ctx context.Context, view, userID string, payload []byte) error
}

// TaskEnqueuer pushes background tasks onto the job queue. Satisfied by
// *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
