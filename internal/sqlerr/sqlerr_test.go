package sqlerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulloo/relivator/internal/errs"
)

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "boards",
		ConstraintName: "unique_boards_title",
	})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BOARD_ALREADY_EXISTS", httpErr.Code)
	assert.Contains(t, httpErr.Message, "Title")
	assert.True(t, httpErr.Override)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "boards",
		ColumnName: "title",
	})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BOARD_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "cards",
		ColumnName: "board_id",
	})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "CARD_NOT_FOUND", httpErr.Code)
	assert.Contains(t, httpErr.Message, "Board")
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := requireHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorUnknownBecomesInternal(t *testing.T) {
	httpErr := requireHTTPError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "connection reset")
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewForbiddenError("not yours", false)
	assert.Same(t, original, requireHTTPError(t, HandleError(original)))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42601"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "title", extractColumnForUniqueViolation("unique_boards_title"))
	assert.Equal(t, "title", extractColumnForUniqueViolation("boards_title_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pkey"))
}
