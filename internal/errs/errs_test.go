package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores("Internal Server Error"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestConstructors(t *testing.T) {
	unauthorized := NewUnauthorizedError("sign in first", false)
	assert.Equal(t, "UNAUTHORIZED", unauthorized.Code)
	assert.Equal(t, http.StatusUnauthorized, unauthorized.Status)
	assert.Equal(t, "sign in first", unauthorized.Message)

	forbidden := NewForbiddenError("not yours", true)
	assert.Equal(t, "FORBIDDEN", forbidden.Code)
	assert.Equal(t, http.StatusForbidden, forbidden.Status)
	assert.True(t, forbidden.Override)

	internal := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	// Internal causes stay server-side; clients see only the status text.
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), internal.Message)
}

func TestBadRequestCustomCode(t *testing.T) {
	code := "BOARD_ALREADY_EXISTS"
	err := NewBadRequestError("duplicate", true, &code, nil, nil)

	assert.Equal(t, "BOARD_ALREADY_EXISTS", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)

	plain := NewBadRequestError("bad", false, nil, nil, nil)
	assert.Equal(t, "BAD_REQUEST", plain.Code)
}

func TestIsMatchesCategory(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewForbiddenError("nope", false))

	// Any *HTTPError matches the category regardless of code.
	assert.True(t, errors.Is(wrapped, NewInternalServerError()))

	var httpErr *HTTPError
	require.ErrorAs(t, wrapped, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
}

func TestWithMessageCopies(t *testing.T) {
	original := NewForbiddenError("original", true)
	modified := original.WithMessage("rephrased")

	assert.Equal(t, "rephrased", modified.Message)
	assert.Equal(t, original.Code, modified.Code)
	assert.Equal(t, original.Status, modified.Status)
	assert.Equal(t, "original", original.Message)
}
