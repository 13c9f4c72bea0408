package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spendly/api/internal/models"
	"github.com/spendly/api/internal/sqlerr"
)

// RecordsRepository persists expense records. Every read and delete is
// scoped by the owning user id; ownership is enforced in SQL, not in Go.
type RecordsRepository struct {
	pool *pgxpool.Pool
}

func NewRecordsRepository(pool *pgxpool.Pool) *RecordsRepository {
	return &RecordsRepository{pool: pool}
}

// Create inserts one record and returns the stored row.
func (r *RecordsRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	query := `
		INSERT INTO records (id, user_id, text, amount, category, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, text, amount, category, date, created_at
	`

	stored := &models.Record{}
	err := r.pool.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.Text,
		record.Amount,
		record.Category,
		record.Date,
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.Text,
		&stored.Amount,
		&stored.Category,
		&stored.Date,
		&stored.CreatedAt,
	)
	if err != nil {
		return nil, sqlerr.Convert(err)
	}

	return stored, nil
}

// DeleteOwned deletes the record matching both id and owner. The
// conjunction is the authorization check: a record that does not exist
// or belongs to another user affects zero rows and surfaces as
// sqlerr.NoRows.
func (r *RecordsRepository) DeleteOwned(ctx context.Context, recordID, userID string) error {
	query := `
		DELETE FROM records
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, recordID, userID)
	if err != nil {
		return sqlerr.Convert(err)
	}

	if tag.RowsAffected() == 0 {
		return sqlerr.Convert(pgx.ErrNoRows)
	}

	return nil
}

// ListRecent returns the user's records ordered by date descending,
// newest first, capped at limit.
func (r *RecordsRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Record, error) {
	query := `
		SELECT id, user_id, text, amount, category, date, created_at
		FROM records
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, sqlerr.Convert(err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var record models.Record
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Text,
			&record.Amount,
			&record.Category,
			&record.Date,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, sqlerr.Convert(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.Convert(err)
	}

	return records, nil
}

// Amounts projects only the amount column for the user's records, so
// aggregations do not transfer unused columns.
func (r *RecordsRepository) Amounts(ctx context.Context, userID string) ([]float64, error) {
	query := `
		SELECT amount
		FROM records
		WHERE user_id = $1
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.Convert(err)
	}
	defer rows.Close()

	amounts := []float64{}
	for rows.Next() {
		var amount float64
		if err := rows.Scan(&amount); err != nil {
			return nil, sqlerr.Convert(err)
		}
		amounts = append(amounts, amount)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.Convert(err)
	}

	return amounts, nil
}

// AllForUser returns every record owned by the user.
func (r *RecordsRepository) AllForUser(ctx context.Context, userID string) ([]models.Record, error) {
	query := `
		SELECT id, user_id, text, amount, category, date, created_at
		FROM records
		WHERE user_id = $1
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, sqlerr.Convert(err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var record models.Record
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Text,
			&record.Amount,
			&record.Category,
			&record.Date,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, sqlerr.Convert(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.Convert(err)
	}

	return records, nil
}
