package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spendly/api/internal/errs"
	"github.com/spendly/api/internal/lib/job"
	"github.com/spendly/api/internal/models"
	"github.com/spendly/api/internal/sqlerr"
)

// recentRecordsLimit caps the list operation at the 10 most recent rows.
const recentRecordsLimit = 10

// Caller-facing messages of the API contract. These strings are the
// contract; do not reword them.
const (
	msgMissingFields     = "Text, amount, category, or date is missing"
	msgInvalidAmount     = "Invalid amount format"
	msgInvalidDate       = "Invalid date format"
	msgNotAuthenticated  = "User not authenticated"
	msgUserNotFound      = "User not found"
	msgUserNotInDatabase = "User not found in database"
	msgProviderFailure   = "Unable to get user details from Clerk"
	msgUserReference     = "Database user reference error. Please try logging out and back in."
	msgDuplicateRecord   = "Duplicate record detected."
	msgCreateUnexpected  = "An unexpected error occurred while adding the expense record."
	msgDatabaseError     = "Database error"
	msgRecordDeleted     = "Record deleted"
)

// CreateRecordInput carries the raw form fields of the create operation.
// Amount and Date stay strings until validated.
type CreateRecordInput struct {
	Text     string
	Amount   string
	Category string
	Date     string
}

// RecordData echoes the stored fields of a created record.
type RecordData struct {
	Text     string  `json:"text"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

// CreateRecordResult wraps RecordData in the contract's data envelope.
type CreateRecordResult struct {
	Data RecordData `json:"data"`
}

// DeleteRecordResult is the success payload of the delete operation.
type DeleteRecordResult struct {
	Message string `json:"message"`
}

// ListRecordsResult holds the caller's most recent records, newest
// first. An empty store yields an empty list, not an error.
type ListRecordsResult struct {
	Records []models.Record `json:"records"`
}

// ExpenseExtremes reports the highest and lowest record amount. Both are
// zero when the caller has no records; "no data" is not an error.
type ExpenseExtremes struct {
	BestExpense  float64 `json:"bestExpense"`
	WorstExpense float64 `json:"worstExpense"`
}

// ExpenseSummary reports the sum of all amounts and the count of records
// with a strictly positive amount. The daysWithRecords name is
// historical: it counts records, not distinct calendar days. Preserved
// as-is because the consuming UI depends on the field.
type ExpenseSummary struct {
	Record          float64 `json:"record"`
	DaysWithRecords int     `json:"daysWithRecords"`
}

// RecordService implements the expense record operations.
type RecordService struct {
	identity IdentityResolver
	users    *UserService
	store    RecordStore
	views    ViewCache
	jobs     TaskEnqueuer
	logger   zerolog.Logger
}

func NewRecordService(
	identity IdentityResolver,
	users *UserService,
	store RecordStore,
	views ViewCache,
	jobs TaskEnqueuer,
	logger zerolog.Logger,
) *RecordService {
	return &RecordService{
		identity: identity,
		users:    users,
		store:    store,
		views:    views,
		jobs:     jobs,
		logger:   logger,
	}
}

// parseEntryDate converts a YYYY-MM-DD string into a UTC instant at
// 12:00:00 on that calendar day. Anchoring to noon instead of midnight
// keeps the calendar date stable when clients render it in local time.
func parseEntryDate(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, pkgerrors.Errorf("expected YYYY-MM-DD, got %q", value)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(err, "parsing year")
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(err, "parsing month")
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(err, "parsing day")
	}

	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC), nil
}

// Create validates the input, provisions the caller's local user when
// needed, and inserts one record owned by that user.
func (s *RecordService) Create(ctx context.Context, input CreateRecordInput) (*CreateRecordResult, error) {
	if input.Text == "" || input.Amount == "" || input.Category == "" || input.Date == "" {
		return nil, errs.NewBadRequestError(msgMissingFields, true, nil, nil)
	}

	amount, err := strconv.ParseFloat(input.Amount, 64)
	if err != nil {
		return nil, errs.NewBadRequestError(msgInvalidAmount, true, nil, nil)
	}

	date, err := parseEntryDate(input.Date)
	if err != nil {
		return nil, errs.NewBadRequestError(msgInvalidDate, true, nil, nil)
	}

	clerkUserID, ok := s.identity.ResolveIdentity(ctx)
	if !ok {
		return nil, errs.NewUnauthorizedError(msgNotAuthenticated, true)
	}

	user, err := s.users.FindOrCreate(ctx, clerkUserID)
	if err != nil {
		var perr *providerError
		if errors.As(err, &perr) {
			return nil, errs.NewBadGatewayError(msgProviderFailure, true)
		}
		return nil, s.mapCreateStoreError(err)
	}

	stored, err := s.store.Create(ctx, &models.Record{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Text:     input.Text,
		Amount:   amount,
		Category: input.Category,
		Date:     date,
	})
	if err != nil {
		return nil, s.mapCreateStoreError(err)
	}

	s.signalMutation(ctx, user.ID)

	return &CreateRecordResult{
		Data: RecordData{
			Text:     stored.Text,
			Amount:   stored.Amount,
			Category: stored.Category,
			Date:     stored.Date.UTC().Format(time.RFC3339),
		},
	}, nil
}

// mapCreateStoreError turns store constraint codes into the create
// operation's actionable messages. A foreign-key violation means the
// session references a user row that no longer exists, hence the
// re-auth hint.
func (s *RecordService) mapCreateStoreError(err error) error {
	switch sqlerr.ErrCode(err) {
	case sqlerr.ForeignKeyViolation:
		return errs.NewBadRequestError(msgUserReference, true, nil, nil)
	case sqlerr.UniqueViolation:
		return errs.NewBadRequestError(msgDuplicateRecord, true, nil, nil)
	default:
		s.logger.Error().Err(err).Msg("unexpected store failure while adding record")
		return errs.NewInternalError(msgCreateUnexpected, true)
	}
}

// Delete removes the record matching both the given id and the caller's
// local user id. The conjunction is the authorization check: records
// that do not exist or belong to someone else fail identically.
func (s *RecordService) Delete(ctx context.Context, recordID string) (*DeleteRecordResult, error) {
	clerkUserID, ok := s.identity.ResolveIdentity(ctx)
	if !ok {
		return nil, errs.NewUnauthorizedError(msgUserNotFound, true)
	}

	user, err := s.users.Find(ctx, clerkUserID)
	if err != nil {
		return nil, s.mapUserLookupError(err)
	}

	if err := s.store.DeleteOwned(ctx, recordID, user.ID); err != nil {
		s.logger.Error().Err(err).Str("record_id", recordID).Msg("failed to delete record")
		return nil, errs.NewInternalError(msgDatabaseError, true)
	}

	s.signalMutation(ctx, user.ID)

	return &DeleteRecordResult{Message: msgRecordDeleted}, nil
}

// List returns the caller's 10 most recent records by date.
func (s *RecordService) List(ctx context.Context) (*ListRecordsResult, error) {
	clerkUserID, ok := s.identity.ResolveIdentity(ctx)
	if !ok {
		return nil, errs.NewUnauthorizedError(msgNotAuthenticated, true)
	}

	user, err := s.users.Find(ctx, clerkUserID)
	if err != nil {
		return nil, s.mapUserLookupError(err)
	}

	records, err := s.store.ListRecent(ctx, user.ID, recentRecordsLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list records")
		return nil, errs.NewInternalError(msgDatabaseError, true)
	}

	return &ListRecordsResult{Records: records}, nil
}

// Extremes computes the caller's best and worst expense over the amount
// projection of their records.
func (s *RecordService) Extremes(ctx context.Context) (*ExpenseExtremes, error) {
	clerkUserID, ok := s.identity.ResolveIdentity(ctx)
	if !ok {
		return nil, errs.NewUnauthorizedError(msgUserNotFound, true)
	}

	user, err := s.users.Find(ctx, clerkUserID)
	if err != nil {
		return nil, s.mapUserLookupError(err)
	}

	amounts, err := s.store.Amounts(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch record amounts")
		return nil, errs.NewInternalError(msgDatabaseError, true)
	}

	return &ExpenseExtremes{
		BestExpense:  maxAmount(amounts),
		WorstExpense: minAmount(amounts),
	}, nil
}

// Summary computes the caller's running total and the count of records
// with positive amounts.
func (s *RecordService) Summary(ctx context.Context) (*ExpenseSummary, error) {
	clerkUserID, ok := s.identity.ResolveIdentity(ctx)
	if !ok {
		return nil, errs.NewUnauthorizedError(msgNotAuthenticated, true)
	}

	user, err := s.users.Find(ctx, clerkUserID)
	if err != nil {
		return nil, s.mapUserLookupError(err)
	}

	records, err := s.store.AllForUser(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch records for summary")
		return nil, errs.NewInternalError(msgDatabaseError, true)
	}

	amounts := make([]float64, len(records))
	for i, record := range records {
		amounts[i] = record.Amount
	}

	return &ExpenseSummary{
		Record:          sumAmounts(amounts),
		DaysWithRecords: countPositive(amounts),
	}, nil
}

// RefreshViews recomputes the user's cached dashboard views. Runs from
// the background revalidation job, so userID is the local id, not the
// Clerk subject.
func (s *RecordService) RefreshViews(ctx context.Context, userID string) error {
	amounts, err := s.store.Amounts(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(err, "fetching amounts for view refresh")
	}

	extremes, err := json.Marshal(ExpenseExtremes{
		BestExpense:  maxAmount(amounts),
		WorstExpense: minAmount(amounts),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "marshaling extremes view")
	}
	if err := s.views.Store(ctx, "extremes", userID, extremes); err != nil {
		return pkgerrors.Wrap(err, "storing extremes view")
	}

	summary, err := json.Marshal(ExpenseSummary{
		Record:          sumAmounts(amounts),
		DaysWithRecords: countPositive(amounts),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "marshaling summary view")
	}
	if err := s.views.Store(ctx, "summary", userID, summary); err != nil {
		return pkgerrors.Wrap(err, "storing summary view")
	}

	return nil
}

// mapUserLookupError maps user-resolution failures outside the create
// path: a missing row is the caller's "no local user yet" state,
// everything else is a database failure.
func (s *RecordService) mapUserLookupError(err error) error {
	if isNoRows(err) {
		return errs.NewNotFoundError(msgUserNotInDatabase, true, nil)
	}
	s.logger.Error().Err(err).Msg("failed to resolve local user")
	return errs.NewInternalError(msgDatabaseError, true)
}

// signalMutation emits the one-way invalidation signal and queues a
// background revalidation of the cached views. Both are best-effort.
func (s *RecordService) signalMutation(ctx context.Context, userID string) {
	if s.views != nil {
		s.views.InvalidateRootView(ctx, userID)
	}

	if s.jobs == nil {
		return
	}
	task, err := job.NewViewRevalidateTask(userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to build revalidate task")
		return
	}
	if _, err := s.jobs.Enqueue(task); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to enqueue revalidate task")
	}
}

func isNoRows(err error) bool {
	return sqlerr.ErrCode(err) == sqlerr.NoRows
}
