package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulloo/relivator/internal/errs"
	"github.com/paulloo/relivator/internal/server"
)

func runErrorHandler(t *testing.T, err error) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	global := NewGlobalMiddlewares(&server.Server{})
	global.GlobalErrorHandler(err, c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGlobalErrorHandlerPassesHTTPErrorThrough(t *testing.T) {
	status, body := runErrorHandler(t, errs.NewForbiddenError("not yours", true))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, "not yours", body["message"])
	assert.Equal(t, true, body["override"])
}

func TestGlobalErrorHandlerConvertsRouteNotFound(t *testing.T) {
	status, body := runErrorHandler(t, echo.NewHTTPError(http.StatusNotFound))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestGlobalErrorHandlerSanitizesUnknownErrors(t *testing.T) {
	status, body := runErrorHandler(t, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
	assert.NotContains(t, body["message"], "password")
}

func TestGlobalErrorHandlerSkipsCommittedResponses(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, c.String(http.StatusOK, "already written"))

	global := NewGlobalMiddlewares(&server.Server{})
	global.GlobalErrorHandler(errs.NewInternalServerError(), c)

	assert.Equal(t, "already written", rec.Body.String())
}
