package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/spendly/api/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
}

func (r *taggedRequest) Validate() error {
	return validator.New().Struct(r)
}

type contractRequest struct {
	Amount string `json:"amount"`
}

func (r *contractRequest) Validate() error {
	if r.Amount == "bad" {
		return errs.NewBadRequestError("Invalid amount format", true, nil, nil)
	}
	return nil
}

func newTestContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newTestContext(`{"email":"jo@example.com","name":"Jo"}`)

	payload := &taggedRequest{}
	require.NoError(t, BindAndValidate(c, payload))

	assert.Equal(t, "jo@example.com", payload.Email)
	assert.Equal(t, "Jo", payload.Name)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	c := newTestContext(`{"email":`)

	err := BindAndValidate(c, &taggedRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Invalid request body", httpErr.Message)
}

func TestBindAndValidateTagFailures(t *testing.T) {
	c := newTestContext(`{"email":"not-an-email","name":"J"}`)

	err := BindAndValidate(c, &taggedRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a valid email address", httpErr.Errors[0].Error)
	assert.Equal(t, "name", httpErr.Errors[1].Field)
	assert.Equal(t, "must be at least 2 characters", httpErr.Errors[1].Error)
}

func TestBindAndValidatePassesHTTPErrorThrough(t *testing.T) {
	c := newTestContext(`{"amount":"bad"}`)

	err := BindAndValidate(c, &contractRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	// Contract messages from the payload's own Validate come back
	// verbatim, not rewrapped.
	assert.Equal(t, "Invalid amount format", httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestExtractValidationErrorCustomErrors(t *testing.T) {
	msg, fieldErrors := extractValidationError(CustomValidationErrors{
		{Field: "date", Message: "must be YYYY-MM-DD"},
	})

	assert.Equal(t, "Validation failed", msg)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "date", fieldErrors[0].Field)
	assert.Equal(t, "must be YYYY-MM-DD", fieldErrors[0].Error)
}
