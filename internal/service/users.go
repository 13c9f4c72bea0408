package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spendly/api/internal/lib/job"
	"github.com/spendly/api/internal/models"
)

// fallbackUserName is stored when the identity provider supplies no name.
const fallbackUserName = "User"

// UserService maps Clerk identities onto local user rows, provisioning
// them lazily on first sight.
type UserService struct {
	store    UserStore
	profiles ProfileFetcher
	jobs     TaskEnqueuer
	logger   zerolog.Logger
}

func NewUserService(store UserStore, profiles ProfileFetcher, jobs TaskEnqueuer, logger zerolog.Logger) *UserService {
	return &UserService{
		store:    store,
		profiles: profiles,
		jobs:     jobs,
		logger:   logger,
	}
}

// Find returns the local user for a Clerk identity. Store errors pass
// through untranslated; callers own the contract messages.
func (s *UserService) Find(ctx context.Context, clerkUserID string) (*models.User, error) {
	return s.store.FindByClerkID(ctx, clerkUserID)
}

// FindOrCreate returns the local user, creating one from Clerk profile
// data when none exists yet. Provisioning is an idempotent upsert
// guarded by the unique index on clerk_user_id, so concurrent first
// requests cannot produce duplicate users. A failed profile fetch comes
// back as a *providerError so the caller can map it to the provider
// error message.
func (s *UserService) FindOrCreate(ctx context.Context, clerkUserID string) (*models.User, error) {
	user, err := s.store.FindByClerkID(ctx, clerkUserID)
	if err == nil {
		return user, nil
	}
	if !isNoRows(err) {
		return nil, err
	}

	// First sight of this identity: pull profile data from Clerk.
	profile, perr := s.profiles.FetchProfile(ctx, clerkUserID)
	if perr != nil {
		return nil, &providerError{cause: perr}
	}

	email := profile.Email
	if email == "" {
		// Synthetic placeholder; Clerk accounts without an email
		// address still get a valid local row.
		email = fmt.Sprintf("%s@temp.com", clerkUserID)
	}

	name := profile.Name
	if name == "" {
		name = fallbackUserName
	}

	stored, created, err := s.store.Upsert(ctx, &models.User{
		ID:          uuid.NewString(),
		ClerkUserID: clerkUserID,
		Email:       email,
		Name:        name,
		ImageURL:    profile.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info().
			Str("user_id", stored.ID).
			Str("clerk_user_id", clerkUserID).
			Msg("provisioned new user")
		s.enqueueWelcomeEmail(stored)
	}

	return stored, nil
}

// enqueueWelcomeEmail is best-effort; a queue failure never fails the
// request that provisioned the user.
func (s *UserService) enqueueWelcomeEmail(user *models.User) {
	if s.jobs == nil {
		return
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.Name)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to build welcome email task")
		return
	}

	if _, err := s.jobs.Enqueue(task); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to enqueue welcome email")
	}
}

// providerError marks a failed identity-provider profile fetch so the
// record service can map it to the contract's provider message.
type providerError struct {
	cause error
}

func (e *providerError) Error() string {
	return "identity provider profile fetch failed: " + e.cause.Error()
}

func (e *providerError) Unwrap() error {
	return e.cause
}
