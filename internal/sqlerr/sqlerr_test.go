package sqlerr

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/spendly/api/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     Code
	}{
		{"23503", ForeignKeyViolation},
		{"23505", UniqueViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"42601", Other},
		{"", Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapCode(tt.sqlstate), "sqlstate %q", tt.sqlstate)
	}
}

func TestConvertPgError(t *testing.T) {
	src := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "users",
		ConstraintName: "users_clerk_user_id_key",
	}

	converted := Convert(src)

	assert.Equal(t, UniqueViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, "23505", converted.DatabaseCode)
	assert.Equal(t, "users", converted.TableName)
	// Unwraps to the original driver error.
	assert.ErrorIs(t, converted, src)
}

func TestConvertNoRows(t *testing.T) {
	assert.Equal(t, NoRows, Convert(pgx.ErrNoRows).Code)
	assert.Equal(t, NoRows, Convert(sql.ErrNoRows).Code)
	assert.Equal(t, NoRows, Convert(errors.Wrap(pgx.ErrNoRows, "scanning user")).Code)
}

func TestConvertUnknownError(t *testing.T) {
	converted := Convert(errors.New("connection reset"))

	assert.Equal(t, Other, converted.Code)
	assert.Equal(t, "connection reset", converted.Message)
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, NoRows, ErrCode(Convert(pgx.ErrNoRows)))
	assert.Equal(t, Other, ErrCode(errors.New("not a database error")))
	assert.Equal(t, Other, ErrCode(nil))
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "USER_ALREADY_EXISTS", generateErrorCode("users", UniqueViolation))
	assert.Equal(t, "RECORD_NOT_FOUND", generateErrorCode("records", ForeignKeyViolation))
	assert.Equal(t, "RECORD_REQUIRED", generateErrorCode("", NotNullViolation))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "clerk", extractColumnForUniqueViolation("unique_users_clerk"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
	assert.Equal(t, "", extractColumnForUniqueViolation("pkey"))
}

func TestHandleErrorPassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewNotFoundError("User not found in database", true, nil)

	assert.Same(t, original, HandleError(original).(*errs.HTTPError))
}

func TestHandleErrorMapsConstraintViolations(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name: "foreign key",
			err: &pgconn.PgError{
				Code:       "23503",
				Severity:   "ERROR",
				TableName:  "records",
				ColumnName: "user_id",
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "The referenced User does not exist",
		},
		{
			name: "unique with named column",
			err: &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "users",
				ConstraintName: "users_email_key",
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "A User with this Email already exists",
		},
		{
			name: "not null",
			err: &pgconn.PgError{
				Code:       "23502",
				Severity:   "ERROR",
				TableName:  "records",
				ColumnName: "amount",
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "The Amount is required",
		},
		{
			name:       "unknown collapses to 500",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}
