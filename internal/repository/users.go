package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendly/api/internal/models"
	"github.com/spendly/api/internal/sqlerr"
)

// UsersRepository persists local users keyed by their Clerk identity.
type UsersRepository struct {
	pool *pgxpool.Pool
}

func NewUsersRepository(pool *pgxpool.Pool) *UsersRepository {
	return &UsersRepository{pool: pool}
}

// FindByClerkID returns the local user for a Clerk user id. A missing
// row surfaces as a sqlerr.NoRows error.
func (r *UsersRepository) FindByClerkID(ctx context.Context, clerkUserID string) (*models.User, error) {
	query := `
		SELECT id, clerk_user_id, email, name, image_url, created_at, updated_at
		FROM users
		WHERE clerk_user_id = $1
	`

	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, clerkUserID).Scan(
		&user.ID,
		&user.ClerkUserID,
		&user.Email,
		&user.Name,
		&user.ImageURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, sqlerr.Convert(err)
	}

	return user, nil
}

// Upsert inserts the user, or returns the existing row when another
// request provisioned the same Clerk identity first. The unique index on
// clerk_user_id makes concurrent first requests race-safe. The returned
// bool reports whether a new row was created.
func (r *UsersRepository) Upsert(ctx context.Context, user *models.User) (*models.User, bool, error) {
	// xmax = 0 distinguishes a fresh insert from a conflict-update.
	query := `
		INSERT INTO users (id, clerk_user_id, email, name, image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (clerk_user_id) DO UPDATE SET updated_at = now()
		RETURNING id, clerk_user_id, email, name, image_url, created_at, updated_at, (xmax = 0)
	`

	stored := &models.User{}
	var created bool
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.ClerkUserID,
		user.Email,
		user.Name,
		user.ImageURL,
	).Scan(
		&stored.ID,
		&stored.ClerkUserID,
		&stored.Email,
		&stored.Name,
		&stored.ImageURL,
		&stored.CreatedAt,
		&stored.UpdatedAt,
		&created,
	)
	if err != nil {
		return nil, false, sqlerr.Convert(err)
	}

	return stored, created, nil
}
