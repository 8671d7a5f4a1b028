package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milahouse/internal/app/commands"
	"milahouse/internal/app/outbox"
	"milahouse/internal/app/queries"
)

type noteCommand struct{ text string }

func (noteCommand) Key() string { return "test.note" }

type noteQuery struct{}

func (noteQuery) Key() string { return "test.note" }

type validatorFunc func(ctx context.Context, msg any) error

func (f validatorFunc) Validate(ctx context.Context, msg any) error { return f(ctx, msg) }

type authorizerFunc func(ctx context.Context, msg any) error

func (f authorizerFunc) Authorize(ctx context.Context, msg any) error { return f(ctx, msg) }

type countingOutbox struct {
	flushes int
}

func (o *countingOutbox) Add(context.Context, outbox.EventRecord) error { return nil }
func (o *countingOutbox) Flush(context.Context) error {
	o.flushes++
	return nil
}

func commandBus(calls *[]string) *commands.InMemoryBus {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, "test.note", commands.HandlerFunc[noteCommand, string](func(_ context.Context, c noteCommand) (string, error) {
		*calls = append(*calls, "handler")
		return c.text, nil
	}))
	return bus
}

func TestChainOrderAndShortCircuit(t *testing.T) {
	var calls []string
	errEmpty := errors.New("empty")
	box := &countingOutbox{}
	bus := ChainCommands(commandBus(&calls),
		Authorization(authorizerFunc(func(context.Context, any) error {
			calls = append(calls, "auth")
			return nil
		})),
		Validation(validatorFunc(func(_ context.Context, msg any) error {
			calls = append(calls, "validate")
			if msg.(noteCommand).text == "" {
				return errEmpty
			}
			return nil
		})),
		OutboxFlush(box),
		Logging(nil),
	)

	got, err := commands.Dispatch[noteCommand, string](context.Background(), bus, noteCommand{text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
	assert.Equal(t, []string{"auth", "validate", "handler"}, calls)
	assert.Equal(t, 1, box.flushes)

	calls = nil
	_, err = commands.Dispatch[noteCommand, string](context.Background(), bus, noteCommand{})
	assert.ErrorIs(t, err, errEmpty)
	assert.Equal(t, []string{"auth", "validate"}, calls)
	assert.Equal(t, 1, box.flushes)
}

func TestQueryAuthorizationDenies(t *testing.T) {
	errDenied := errors.New("denied")
	base := queries.NewInMemoryBus()
	queries.RegisterHandler(base, "test.note", queries.HandlerFunc[noteQuery, int](func(context.Context, noteQuery) (int, error) {
		return 1, nil
	}))
	bus := ChainQueries(base, QueryAuthorization(authorizerFunc(func(context.Context, any) error { return errDenied })))

	_, err := queries.Ask[noteQuery, int](context.Background(), bus, noteQuery{})
	assert.ErrorIs(t, err, errDenied)
}

func TestQueryValidationStopsBeforeHandler(t *testing.T) {
	errInvalid := errors.New("invalid")
	handled := 0
	base := queries.NewInMemoryBus()
	queries.RegisterHandler(base, "test.note", queries.HandlerFunc[noteQuery, int](func(context.Context, noteQuery) (int, error) {
		handled++
		return 1, nil
	}))

	pass := ChainQueries(base, QueryValidation(validatorFunc(func(context.Context, any) error { return nil })))
	got, err := queries.Ask[noteQuery, int](context.Background(), pass, noteQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	refuse := ChainQueries(base, QueryValidation(validatorFunc(func(context.Context, any) error { return errInvalid })))
	_, err = queries.Ask[noteQuery, int](context.Background(), refuse, noteQuery{})
	assert.ErrorIs(t, err, errInvalid)
	assert.Equal(t, 1, handled)

	assert.Panics(t, func() { QueryValidation(nil) })
}
