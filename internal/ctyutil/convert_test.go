package ctyutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestToGo(t *testing.T) {
	obj := cty.ObjectVal(map[string]cty.Value{
		"name":    cty.StringVal("trickle"),
		"count":   cty.NumberIntVal(3),
		"enabled": cty.True,
		"tags":    cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
	})

	got, err := ToGo(obj)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":    "trickle",
		"count":   float64(3),
		"enabled": true,
		"tags":    []any{"a", "b"},
	}, got)
}

func TestToGoNull(t *testing.T) {
	got, err := ToGo(cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFromGo(t *testing.T) {
	got, err := FromGo(map[string]any{
		"name":  "trickle",
		"count": 3,
	})
	require.NoError(t, err)

	want := cty.ObjectVal(map[string]cty.Value{
		"name":  cty.StringVal("trickle"),
		"count": cty.NumberIntVal(3),
	})
	assert.True(t, want.RawEquals(got), "got %s", got.GoString())
}

func TestFromGoUnsupported(t *testing.T) {
	_, err := FromGo(struct{}{})
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	in := map[string]any{
		"outer": map[string]any{"inner": "value"},
		"list":  []any{1.0, 2.0},
	}

	val, err := FromGo(in)
	require.NoError(t, err)
	out, err := ToGo(val)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
