package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingQuery struct{ n int }

func (pingQuery) Key() string { return "test.ping" }

type otherQuery struct{}

func (otherQuery) Key() string { return "test.other" }

func TestAskRoutesByKey(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler(bus, "test.ping", HandlerFunc[pingQuery, int](func(_ context.Context, q pingQuery) (int, error) {
		return q.n * 2, nil
	}))

	got, err := Ask[pingQuery, int](context.Background(), bus, pingQuery{n: 21})
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = Ask[otherQuery, int](context.Background(), bus, otherQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = Ask[pingQuery, string](context.Background(), bus, pingQuery{})
	assert.ErrorIs(t, err, ErrResultType)
	assert.EqualError(t, err, "queries: result type mismatch: test.ping answered int, want string")

	_, err = Ask[pingQuery, int](context.Background(), nil, pingQuery{})
	assert.ErrorIs(t, err, ErrNilBus)

	assert.Equal(t, []string{"test.ping"}, bus.Keys())
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	bus := NewInMemoryBus()
	h := HandlerFunc[pingQuery, int](func(context.Context, pingQuery) (int, error) { return 0, nil })
	RegisterHandler(bus, "test.ping", h)
	assert.Panics(t, func() { RegisterHandler(bus, "test.ping", h) })
}
