package graph

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsahin/trickle/internal/executor"
	"github.com/fsahin/trickle/internal/future"
)

func TestBindingResolution(t *testing.T) {
	userID := NewName[int]("user_id")

	t.Run("immediate value is wrapped", func(t *testing.T) {
		f := resolveBinding(BindingDep{Name: userID}, Bindings{userID: 7})
		v, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("future value passes through unwrapped", func(t *testing.T) {
		bound := future.Completed(7)
		f := resolveBinding(BindingDep{Name: userID}, Bindings{userID: bound})
		assert.Same(t, bound, f)
	})

	t.Run("missing name fails identifying the name", func(t *testing.T) {
		f := resolveBinding(BindingDep{Name: userID}, Bindings{})
		_, err := f.Result()
		assert.ErrorIs(t, err, ErrNameNotBound)
		assert.ErrorContains(t, err, "user_id")
	})

	t.Run("type mismatch fails identifying both types", func(t *testing.T) {
		f := resolveBinding(BindingDep{Name: userID}, Bindings{userID: "not an int"})
		_, err := f.Result()
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.ErrorContains(t, err, "int")
		assert.ErrorContains(t, err, "string")
	})

	t.Run("value assignable to an interface key is accepted", func(t *testing.T) {
		stringish := NewName[interface{ String() string }]("stringish")
		f := resolveBinding(BindingDep{Name: stringish}, Bindings{stringish: NewName[int]("x")})
		_, err := f.Result()
		assert.NoError(t, err)
	})
}

func TestBindingValidationPrecedesInvocation(t *testing.T) {
	count := NewName[int]("count")

	var invoked atomic.Bool
	n := NewFunc(func(context.Context, []any) (any, error) {
		invoked.Store(true)
		return nil, nil
	})

	builder := NewBuilder()
	builder.Call("n", n).With(Binding(count))
	g, err := builder.Build()
	require.NoError(t, err)

	_, err = g.Resolve(context.Background(), n, Bindings{count: "three"}, executor.Sync{}).Result()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.False(t, invoked.Load())
}

func TestUnboundNameFailsExecutionPath(t *testing.T) {
	count := NewName[int]("count")
	n := constNode("unreachable", nil)

	builder := NewBuilder()
	builder.Call("n", n).With(Binding(count))
	g, err := builder.Build()
	require.NoError(t, err)

	_, err = g.Resolve(context.Background(), n, nil, executor.Sync{}).Result()
	assert.ErrorIs(t, err, ErrNameNotBound)
	assert.ErrorContains(t, err, "count")
}

func TestBindingErrorRecoverableByFallback(t *testing.T) {
	count := NewName[int]("count")
	n := constNode("unreachable", nil)

	builder := NewBuilder()
	builder.Call("n", n).With(Binding(count)).Fallback(0)
	g, err := builder.Build()
	require.NoError(t, err)

	v, err := g.Resolve(context.Background(), n, nil, executor.Sync{}).Result()
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestBindingFailedFutureValue(t *testing.T) {
	// A bound future that fails feeds an upstream failure into the join.
	count := NewName[int]("count")
	n := constNode("unreachable", nil)

	builder := NewBuilder()
	builder.Call("n", n).With(Binding(count))
	g, err := builder.Build()
	require.NoError(t, err)

	boundErr := assert.AnError
	_, err = g.Resolve(context.Background(), n, Bindings{count: future.Failed(boundErr)}, executor.Sync{}).Result()
	assert.ErrorIs(t, err, boundErr)
}
