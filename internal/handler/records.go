package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/spendly/api/internal/server"
	"github.com/spendly/api/internal/service"
)

// RecordHandler exposes the expense record endpoints. All contract
// validation, including the exact caller-facing messages, lives in the
// service layer; the request types here only carry the bound fields.
type RecordHandler struct {
	Handler
	records *service.RecordService
}

func NewRecordHandler(s *server.Server, records *service.RecordService) *RecordHandler {
	return &RecordHandler{
		Handler: NewHandler(s),
		records: records,
	}
}

// CreateRecordRequest carries the raw form fields of a new expense.
// Amount and date arrive as strings and are validated downstream so
// the contract's exact error messages apply.
type CreateRecordRequest struct {
	Text     string `json:"text"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

func (r *CreateRecordRequest) Validate() error {
	return nil
}

// DeleteRecordRequest identifies the record to remove by path
// parameter.
type DeleteRecordRequest struct {
	ID string `param:"id"`
}

func (r *DeleteRecordRequest) Validate() error {
	return nil
}

// EmptyRequest is the payload type for endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// Create adds an expense record for the authenticated user.
func (h *RecordHandler) Create(c echo.Context, req *CreateRecordRequest) (*service.CreateRecordResult, error) {
	return h.records.Create(c.Request().Context(), service.CreateRecordInput{
		Text:     req.Text,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
	})
}

// Delete removes one of the authenticated user's records.
func (h *RecordHandler) Delete(c echo.Context, req *DeleteRecordRequest) (*service.DeleteRecordResult, error) {
	return h.records.Delete(c.Request().Context(), req.ID)
}

// List returns the user's most recent records, newest first.
func (h *RecordHandler) List(c echo.Context, req *EmptyRequest) (*service.ListRecordsResult, error) {
	return h.records.List(c.Request().Context())
}

// Extremes returns the user's highest and lowest expense amounts.
func (h *RecordHandler) Extremes(c echo.Context, req *EmptyRequest) (*service.ExpenseExtremes, error) {
	return h.records.Extremes(c.Request().Context())
}

// Summary returns the user's total spend and distinct active days.
func (h *RecordHandler) Summary(c echo.Context, req *EmptyRequest) (*service.ExpenseSummary, error) {
	return h.records.Summary(c.Request().Context())
}
