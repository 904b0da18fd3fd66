package procedure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulloo/relivator/internal/model"
)

func passthroughStep(name string, order *[]string, requires, provides []Field) Step {
	return Step{
		Name:     name,
		Requires: requires,
		Provides: provides,
		Run: func(ctx context.Context, pc *Context, input any, next Handler) (any, error) {
			*order = append(*order, name)
			for _, f := range provides {
				pc.Provide(f)
			}
			return next(ctx, pc, input)
		},
	}
}

func TestNewRejectsUnprovidedRequirement(t *testing.T) {
	var order []string

	_, err := New(Meta{Name: "test.bad"},
		passthroughStep("needs_user", &order, []Field{FieldUser}, nil),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs_user")
	assert.Contains(t, err.Error(), "user")
}

func TestNewRejectsProviderDeclaredLater(t *testing.T) {
	var order []string

	// The provider exists but runs after the consumer: still rejected.
	_, err := New(Meta{Name: "test.misordered"},
		passthroughStep("consumer", &order, []Field{FieldSession}, nil),
		passthroughStep("provider", &order, nil, []Field{FieldSession}),
	)

	require.Error(t, err)
}

func TestNewAcceptsSatisfiedChain(t *testing.T) {
	var order []string

	_, err := New(Meta{Name: "test.ok"},
		passthroughStep("a", &order, nil, []Field{FieldSession}),
		passthroughStep("b", &order, []Field{FieldSession}, []Field{FieldUser}),
		passthroughStep("c", &order, []Field{FieldUser}, nil),
	)

	require.NoError(t, err)
}

func TestInvokeRunsStepsInDeclarationOrder(t *testing.T) {
	var order []string

	p, err := New(Meta{Name: "test.order"},
		passthroughStep("first", &order, nil, []Field{FieldSession}),
		passthroughStep("second", &order, []Field{FieldSession}, []Field{FieldUser}),
		passthroughStep("third", &order, []Field{FieldUser}, nil),
	)
	require.NoError(t, err)

	result, err := p.Invoke(context.Background(), NewContext(nil), nil,
		func(ctx context.Context, pc *Context, input any) (any, error) {
			order = append(order, "terminal")
			return "done", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, []string{"first", "second", "third", "terminal"}, order)
}

func TestInvokeShortCircuitSkipsDownstream(t *testing.T) {
	var order []string

	p, err := New(Meta{Name: "test.abort"},
		passthroughStep("outer", &order, nil, []Field{FieldSession}),
		Step{
			Name:     "gate",
			Requires: []Field{FieldSession},
			Run: func(ctx context.Context, pc *Context, input any, next Handler) (any, error) {
				order = append(order, "gate")
				return nil, assert.AnError
			},
		},
		passthroughStep("inner", &order, nil, nil),
	)
	require.NoError(t, err)

	terminalRan := false
	_, err = p.Invoke(context.Background(), NewContext(nil), nil,
		func(ctx context.Context, pc *Context, input any) (any, error) {
			terminalRan = true
			return nil, nil
		})

	require.Error(t, err)
	assert.False(t, terminalRan)
	assert.Equal(t, []string{"outer", "gate"}, order)
}

func TestContextTracksProvidedFields(t *testing.T) {
	pc := NewContext(nil)

	assert.False(t, pc.Provided(FieldSession))
	assert.False(t, pc.SessionResolved())

	// A nil session is a valid resolution: the field counts as provided.
	pc.SetSession(nil)
	assert.True(t, pc.Provided(FieldSession))
	assert.True(t, pc.SessionResolved())
	assert.Nil(t, pc.Session())

	pc.SetUser(&model.User{ID: "user_1"})
	assert.True(t, pc.Provided(FieldUser))
	assert.Equal(t, "user_1", pc.User().ID)

	pc.SetBoard(&model.Board{ID: "board_1"})
	assert.True(t, pc.Provided(FieldBoard))
	assert.Equal(t, "board_1", pc.Board().ID)
}
