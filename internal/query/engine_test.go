package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/json2ts/pkg/value"
)

func parse(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.ParseJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestEngine_Select_Identity(t *testing.T) {
	engine := NewEngine()
	v := parse(t, `{"a": 1}`)

	got, err := engine.Select(v, "")
	require.NoError(t, err)
	assert.Same(t, v.(*value.Object), got.(*value.Object))

	got, err = engine.Select(v, " . ")
	require.NoError(t, err)
	assert.Same(t, v.(*value.Object), got.(*value.Object))
}

func TestEngine_Select_PathKeepsOrder(t *testing.T) {
	engine := NewEngine()
	v := parse(t, `{"data": {"user": {"zeta": 1, "alpha": 2, "mid": 3}}}`)

	got, err := engine.Select(v, ".data.user")
	require.NoError(t, err)

	obj, ok := got.(*value.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
}

func TestEngine_Select_MultipleOutputs(t *testing.T) {
	engine := NewEngine()
	v := parse(t, `{"items": [{"b": 1, "a": 2}, {"b": 3}]}`)

	got, err := engine.Select(v, ".items[]")
	require.NoError(t, err)

	arr, ok := got.(value.Array)
	require.True(t, ok)
	require.Len(t, arr, 2)
	assert.Equal(t, []string{"b", "a"}, arr[0].(*value.Object).Keys())
}

func TestEngine_Select_Slice(t *testing.T) {
	engine := NewEngine()
	v := parse(t, `{"items": [{"id": 0}, {"z": 1, "id": 1}, {"id": 2}, {"id": 3}]}`)

	got, err := engine.Select(v, ".items[1:3]")
	require.NoError(t, err)
	arr, ok := got.(value.Array)
	require.True(t, ok)
	require.Len(t, arr, 2)
	// Slices resolve as paths, so member order survives.
	assert.Equal(t, []string{"z", "id"}, arr[0].(*value.Object).Keys())

	got, err = engine.Select(v, ".items[2:]")
	require.NoError(t, err)
	require.Len(t, got.(value.Array), 2)

	got, err = engine.Select(v, ".items[-1:][0].id")
	require.NoError(t, err)
	assert.Equal(t, value.Number(3), got)
}

func TestEngine_Select_StringSlice(t *testing.T) {
	engine := NewEngine()
	got, err := engine.Select(parse(t, `{"name": "gopher"}`), ".name[1:4]")
	require.NoError(t, err)
	assert.Equal(t, value.String("oph"), got)
}

func TestEngine_Select_ValueExpression(t *testing.T) {
	engine := NewEngine()
	v := parse(t, `{"items": [{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]}`)

	got, err := engine.Select(v, `[.items[] | {name, id}]`)
	require.NoError(t, err)

	arr, ok := got.(value.Array)
	require.True(t, ok)
	require.Len(t, arr, 2)
	// Constructed objects lose source order; keys come back sorted.
	assert.Equal(t, []string{"id", "name"}, arr[0].(*value.Object).Keys())
}

func TestEngine_Select_Scalar(t *testing.T) {
	engine := NewEngine()
	got, err := engine.Select(parse(t, `{"count": 3}`), ".count + 1")
	require.NoError(t, err)
	assert.Equal(t, value.Number(4), got)
}

func TestEngine_Select_NoMatch(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Select(parse(t, `{"items": []}`), ".items[]")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestEngine_Select_RuntimeError(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Select(parse(t, `{"items": null}`), ".items[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot iterate over: null")
	assert.Contains(t, err.Error(), "the path may not exist")
}

func TestEngine_Select_MaxResults(t *testing.T) {
	engine := &Engine{MaxResults: 2}
	got, err := engine.Select(parse(t, `[1, 2, 3, 4]`), ".[]")
	require.NoError(t, err)
	assert.Equal(t, value.Array{value.Number(1), value.Number(2)}, got)
}

func TestEngine_ValidateExpression(t *testing.T) {
	engine := NewEngine()
	assert.NoError(t, engine.ValidateExpression(".a.b[]"))

	err := engine.ValidateExpression(".a[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}
