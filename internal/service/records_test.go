package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spendly/api/internal/errs"
	"github.com/spendly/api/internal/models"
	"github.com/spendly/api/internal/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordServiceFixture struct {
	svc       *RecordService
	userStore *fakeUserStore
	profiles  *fakeProfiles
	store     *fakeRecordStore
	views     *fakeViews
	jobs      *fakeEnqueuer
}

func newRecordServiceFixture(subject string, users ...*models.User) *recordServiceFixture {
	f := &recordServiceFixture{
		userStore: newFakeUserStore(users...),
		profiles:  &fakeProfiles{profile: &Profile{Email: "jo@example.com", Name: "Jo Doe"}},
		store:     &fakeRecordStore{},
		views:     newFakeViews(),
		jobs:      &fakeEnqueuer{},
	}

	userService := NewUserService(f.userStore, f.profiles, f.jobs, zerolog.Nop())
	f.svc = NewRecordService(
		fakeIdentity{subject: subject},
		userService,
		f.store,
		f.views,
		f.jobs,
		zerolog.Nop(),
	)
	return f
}

func validCreateInput() CreateRecordInput {
	return CreateRecordInput{
		Text:     "Coffee",
		Amount:   "4.50",
		Category: "Food",
		Date:     "2025-08-14",
	}
}

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRecordInput)
	}{
		{"no text", func(in *CreateRecordInput) { in.Text = "" }},
		{"no amount", func(in *CreateRecordInput) { in.Amount = "" }},
		{"no category", func(in *CreateRecordInput) { in.Category = "" }},
		{"no date", func(in *CreateRecordInput) { in.Date = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecordServiceFixture("clerk_1")
			input := validCreateInput()
			tt.mutate(&input)

			_, err := f.svc.Create(context.Background(), input)

			requireHTTPError(t, err, http.StatusBadRequest, "Text, amount, category, or date is missing")
			assert.Zero(t, f.store.createCalls)
		})
	}
}

func TestCreateRejectsBadAmount(t *testing.T) {
	f := newRecordServiceFixture("clerk_1")
	input := validCreateInput()
	input.Amount = "four fifty"

	_, err := f.svc.Create(context.Background(), input)

	requireHTTPError(t, err, http.StatusBadRequest, "Invalid amount format")
	assert.Zero(t, f.store.createCalls)
}

func TestCreateRejectsBadDate(t *testing.T) {
	f := newRecordServiceFixture("clerk_1")

	for _, date := range []string{"14/08/2025", "2025-08", "not-a-date"} {
		input := validCreateInput()
		input.Date = date

		_, err := f.svc.Create(context.Background(), input)

		requireHTTPError(t, err, http.StatusBadRequest, "Invalid date format")
	}
	assert.Zero(t, f.store.createCalls)
}

func TestCreateRejectsUnauthenticated(t *testing.T) {
	f := newRecordServiceFixture("")

	_, err := f.svc.Create(context.Background(), validCreateInput())

	requireHTTPError(t, err, http.StatusUnauthorized, "User not authenticated")
	assert.Zero(t, f.store.createCalls)
	assert.Zero(t, f.profiles.calls)
}

func TestCreateProvisionsFirstTimeUser(t *testing.T) {
	f := newRecordServiceFixture("clerk_new")

	result, err := f.svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "Coffee", result.Data.Text)
	assert.Equal(t, 4.5, result.Data.Amount)
	assert.Equal(t, "Food", result.Data.Category)
	// Dates are anchored to noon UTC of the entry's calendar day.
	assert.Equal(t, "2025-08-14T12:00:00Z", result.Data.Date)

	require.Equal(t, 1, f.userStore.upsertCalls)
	assert.Equal(t, "jo@example.com", f.userStore.lastUpsert.Email)
	assert.Equal(t, "Jo Doe", f.userStore.lastUpsert.Name)

	// First sight queues the welcome email plus the view revalidation.
	assert.Contains(t, f.jobs.typesEnqueued(), "email:welcome")
	assert.Contains(t, f.jobs.typesEnqueued(), "views:revalidate")
	assert.Len(t, f.views.invalidated, 1)
}

func TestCreateReusesExistingUser(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
	f := newRecordServiceFixture("clerk_1", existing)

	_, err := f.svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Zero(t, f.profiles.calls)
	assert.Zero(t, f.userStore.upsertCalls)
	assert.Equal(t, "user_1", f.store.lastCreated.UserID)
	assert.NotContains(t, f.jobs.typesEnqueued(), "email:welcome")
	assert.Contains(t, f.jobs.typesEnqueued(), "views:revalidate")
}

func TestCreateMapsProviderFailure(t *testing.T) {
	f := newRecordServiceFixture("clerk_new")
	f.profiles.err = errors.New("clerk is down")

	_, err := f.svc.Create(context.Background(), validCreateInput())

	requireHTTPError(t, err, http.StatusBadGateway, "Unable to get user details from Clerk")
	assert.Zero(t, f.store.createCalls)
}

func TestCreateMapsStoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		storeErr   error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "foreign key violation",
			storeErr:   sqlerr.Convert(&pgconn.PgError{Code: "23503", Severity: "ERROR"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Database user reference error. Please try logging out and back in.",
		},
		{
			name:       "unique violation",
			storeErr:   sqlerr.Convert(&pgconn.PgError{Code: "23505", Severity: "ERROR"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Duplicate record detected.",
		},
		{
			name:       "anything else",
			storeErr:   sqlerr.Convert(errors.New("connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "An unexpected error occurred while adding the expense record.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
			f := newRecordServiceFixture("clerk_1", existing)
			f.store.createErr = tt.storeErr

			_, err := f.svc.Create(context.Background(), validCreateInput())

			requireHTTPError(t, err, tt.wantStatus, tt.wantMsg)
			assert.Empty(t, f.views.invalidated)
		})
	}
}

func TestDeleteRejectsUnauthenticated(t *testing.T) {
	f := newRecordServiceFixture("")

	_, err := f.svc.Delete(context.Background(), "rec_1")

	requireHTTPError(t, err, http.StatusUnauthorized, "User not found")
}

func TestDeleteRequiresLocalUser(t *testing.T) {
	f := newRecordServiceFixture("clerk_1")

	_, err := f.svc.Delete(context.Background(), "rec_1")

	requireHTTPError(t, err, http.StatusNotFound, "User not found in database")
}

func TestDeleteScopesToOwner(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
	f := newRecordServiceFixture("clerk_1", existing)

	result, err := f.svc.Delete(context.Background(), "rec_9")
	require.NoError(t, err)

	assert.Equal(t, "Record deleted", result.Message)
	assert.Equal(t, "rec_9", f.store.deletedID)
	assert.Equal(t, "user_1", f.store.deletedUser)
	assert.Equal(t, []string{"user_1"}, f.views.invalidated)
}

func TestDeleteMapsStoreFailure(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
	f := newRecordServiceFixture("clerk_1", existing)
	f.store.deleteErr = errors.New("boom")

	_, err := f.svc.Delete(context.Background(), "rec_9")

	requireHTTPError(t, err, http.StatusInternalServerError, "Database error")
	assert.Empty(t, f.views.invalidated)
}

func TestListReturnsMostRecentTen(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
	f := newRecordServiceFixture("clerk_1", existing)
	for i := 0; i < 12; i++ {
		f.store.records = append(f.store.records, models.Record{ID: "rec", UserID: "user_1"})
	}

	result, err := f.svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, f.store.listLimit)
	assert.Len(t, result.Records, 10)
}

func TestListEmptyStoreIsNotAnError(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
	f := newRecordServiceFixture("clerk_1", existing)

	result, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestListRejectsUnauthenticated(t *testing.T) {
	f := newRecordServiceFixture("")

	_, err := f.svc.List(context.Background())

	requireHTTPError(t, err, http.StatusUnauthorized, "User not authenticated")
}

func TestExtremes(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}

	t.Run("mixed sign amounts", func(t *testing.T) {
		f := newRecordServiceFixture("clerk_1", existing)
		f.store.amounts = []float64{5, -2, 10}

		result, err := f.svc.Extremes(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 10.0, result.BestExpense)
		assert.Equal(t, -2.0, result.WorstExpense)
	})

	t.Run("no records yields zeros", func(t *testing.T) {
		f := newRecordServiceFixture("clerk_1", existing)

		result, err := f.svc.Extremes(context.Background())
		require.NoError(t, err)

		assert.Zero(t, result.BestExpense)
		assert.Zero(t, result.WorstExpense)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		f := newRecordServiceFixture("")

		_, err := f.svc.Extremes(context.Background())

		requireHTTPError(t, err, http.StatusUnauthorized, "User not found")
	})
}

func TestSummary(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
	f := newRecordServiceFixture("clerk_1", existing)
	f.store.records = []models.Record{
		{Amount: 5}, {Amount: 0}, {Amount: -2}, {Amount: 10},
	}

	result, err := f.svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 13.0, result.Record)
	// Counts records with strictly positive amounts, not calendar days.
	assert.Equal(t, 2, result.DaysWithRecords)
}

func TestRefreshViewsStoresBothViews(t *testing.T) {
	existing := &models.User{ID: "user_1", ClerkUserID: "clerk_1"}
	f := newRecordServiceFixture("clerk_1", existing)
	f.store.amounts = []float64{5, -2, 10}

	err := f.svc.RefreshViews(context.Background(), "user_1")
	require.NoError(t, err)

	var extremes ExpenseExtremes
	require.NoError(t, json.Unmarshal(f.views.stored["extremes:user_1"], &extremes))
	assert.Equal(t, 10.0, extremes.BestExpense)
	assert.Equal(t, -2.0, extremes.WorstExpense)

	var summary ExpenseSummary
	require.NoError(t, json.Unmarshal(f.views.stored["summary:user_1"], &summary))
	assert.Equal(t, 13.0, summary.Record)
	assert.Equal(t, 2, summary.DaysWithRecords)
}
