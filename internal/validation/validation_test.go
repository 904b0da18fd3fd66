package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulloo/relivator/internal/errs"
)

type boardPayload struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	Email       string `json:"email" validate:"omitempty,email"`
}

func (p *boardPayload) Validate() error { return Struct(p) }

func bindJSON(t *testing.T, body string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := bindJSON(t, `{"title":"Roadmap","description":"Q3 plans"}`)

	payload := &boardPayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, "Roadmap", payload.Title)
}

func TestBindAndValidateMissingRequired(t *testing.T) {
	c := bindJSON(t, `{"description":"no title"}`)

	err := BindAndValidate(c, &boardPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestBindAndValidateBadEmail(t *testing.T) {
	c := bindJSON(t, `{"title":"Roadmap","email":"not-an-email"}`)

	err := BindAndValidate(c, &boardPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a valid email address", httpErr.Errors[0].Error)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c := bindJSON(t, `{"title": `)

	err := BindAndValidate(c, &boardPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Malformed request payload", httpErr.Message)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("a3bb189e-8bf9-3888-9912-ace4e6543002"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
