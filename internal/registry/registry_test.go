package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	h := &Handler{Fn: func(context.Context, *struct{}) (cty.Value, error) { return cty.NilVal, nil }}

	r.Register("print", h)

	got, ok := r.Lookup("print")
	require.True(t, ok)
	assert.Same(t, h, got)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	h := &Handler{}
	r.Register("print", h)
	assert.Panics(t, func() { r.Register("print", h) })
}

func TestTypesAreSorted(t *testing.T) {
	r := New()
	r.Register("zeta", &Handler{})
	r.Register("alpha", &Handler{})
	assert.Equal(t, []string{"alpha", "zeta"}, r.Types())
}

func TestInvoke(t *testing.T) {
	type input struct {
		Value string `hcl:"value"`
	}

	t.Run("passes input and returns value", func(t *testing.T) {
		h := &Handler{
			NewInput: func() any { return new(input) },
			Fn: func(_ context.Context, in *input) (cty.Value, error) {
				return cty.StringVal(in.Value), nil
			},
		}

		v, err := h.Invoke(context.Background(), &input{Value: "hi"})
		require.NoError(t, err)
		assert.Equal(t, cty.StringVal("hi"), v)
	})

	t.Run("nil input becomes the zero argument", func(t *testing.T) {
		h := &Handler{
			Fn: func(_ context.Context, in *input) (cty.Value, error) {
				if in != nil {
					return cty.NilVal, errors.New("expected nil input")
				}
				return cty.True, nil
			},
		}

		v, err := h.Invoke(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, cty.True, v)
	})

	t.Run("handler error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		h := &Handler{
			Fn: func(context.Context, *input) (cty.Value, error) { return cty.NilVal, boom },
		}

		_, err := h.Invoke(context.Background(), &input{})
		assert.ErrorIs(t, err, boom)
	})
}
