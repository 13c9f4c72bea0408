package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores("Internal Server Error"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"unauthorized", NewUnauthorizedError("User not authenticated", true), http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated"},
		{"bad request", NewBadRequestError("Invalid amount format", true, nil, nil), http.StatusBadRequest, "BAD_REQUEST", "Invalid amount format"},
		{"not found", NewNotFoundError("User not found in database", true, nil), http.StatusNotFound, "NOT_FOUND", "User not found in database"},
		{"bad gateway", NewBadGatewayError("Unable to get user details from Clerk", true), http.StatusBadGateway, "BAD_GATEWAY", "Unable to get user details from Clerk"},
		{"internal", NewInternalError("Database error", true), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Database error"},
		{"too many requests", NewTooManyRequestsError("Too many requests"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestBadRequestCodeOverride(t *testing.T) {
	code := "USER_ALREADY_EXISTS"
	err := NewBadRequestError("A User with this Email already exists", true, &code, nil)

	assert.Equal(t, "USER_ALREADY_EXISTS", err.Code)
}

func TestErrorsAsFindsWrappedHTTPError(t *testing.T) {
	wrapped := errors.Wrap(NewNotFoundError("User not found in database", true, nil), "listing records")

	var httpErr *HTTPError
	require.ErrorAs(t, wrapped, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestWithMessageCopies(t *testing.T) {
	base := NewInternalError("Database error", true)
	copied := base.WithMessage("Something else")

	assert.Equal(t, "Something else", copied.Message)
	assert.Equal(t, "Database error", base.Message)
	assert.Equal(t, base.Status, copied.Status)
}
