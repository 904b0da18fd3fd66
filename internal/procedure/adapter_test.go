package procedure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulloo/relivator/internal/errs"
	"github.com/paulloo/relivator/internal/model"
	"github.com/paulloo/relivator/internal/validation"
)

type createRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

func (r *createRequest) Validate() error { return validation.Struct(r) }

func newEchoContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleWritesJSONResult(t *testing.T) {
	resolver := &stubResolver{session: &model.Session{UserID: "user_1"}}
	b := testBuilder(t, resolver, nil)
	p := b.Protected(Meta{Name: "test.create", Method: http.MethodPost, Path: "/api/things"})

	h := Handle(b, p, http.StatusCreated,
		func() *createRequest { return &createRequest{} },
		func(ctx context.Context, pc *Context, req *createRequest) (any, error) {
			return map[string]string{
				"title": req.Title,
				"owner": pc.User().ID,
			}, nil
		})

	c, rec := newEchoContext(t, http.MethodPost, `{"title":"Roadmap"}`)

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"title":"Roadmap","owner":"user_1"}`, rec.Body.String())
}

func TestHandleRejectsInvalidPayloadBeforeChain(t *testing.T) {
	resolver := &stubResolver{session: &model.Session{UserID: "user_1"}}
	b := testBuilder(t, resolver, nil)
	p := b.Protected(Meta{Name: "test.create", Method: http.MethodPost, Path: "/api/things"})

	h := Handle(b, p, http.StatusCreated,
		func() *createRequest { return &createRequest{} },
		func(ctx context.Context, pc *Context, req *createRequest) (any, error) {
			t.Fatal("handler must not run for invalid payloads")
			return nil, nil
		})

	c, _ := newEchoContext(t, http.MethodPost, `{}`)

	err := h(c)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)

	// Validation failures never touched the session resolver.
	assert.Equal(t, 0, resolver.calls)
}

func TestHandlePropagatesChainErrors(t *testing.T) {
	b := testBuilder(t, &stubResolver{session: nil}, nil)
	p := b.Protected(Meta{Name: "test.create", Method: http.MethodPost, Path: "/api/things"})

	h := Handle(b, p, http.StatusCreated,
		func() *createRequest { return &createRequest{} },
		func(ctx context.Context, pc *Context, req *createRequest) (any, error) {
			return nil, nil
		})

	c, _ := newEchoContext(t, http.MethodPost, `{"title":"Roadmap"}`)

	err := h(c)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}

func TestNewContextIsFreshPerRequest(t *testing.T) {
	b := testBuilder(t, &stubResolver{}, nil)
	p := b.Public(Meta{Name: "test.public"})

	c, _ := newEchoContext(t, http.MethodGet, "")

	first := b.NewContext(c, p)
	second := b.NewContext(c, p)

	require.NotSame(t, first, second)

	first.SetUser(&model.User{ID: "user_1"})
	assert.False(t, second.Provided(FieldUser))
}
