package hermod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersOrdering(t *testing.T) {
	t.Parallel()

	b := NewParametersBuilder()
	for _, name := range []string{"c", "a", "b"} {
		b.WithDelegateParameter("", name, func(p interface{}) (interface{}, error) { return p, nil })
	}
	params, err := b.Parameters()
	require.NoError(t, err)

	require.Equal(t, 3, params.Len())
	names := make([]string, 0, 3)
	for _, p := range params.All() {
		names = append(names, p.Name)
	}
	// Registration order, not lexical order
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestParametersPositional(t *testing.T) {
	t.Parallel()

	kv, err := NewParametersBuilder().Parameters()
	require.NoError(t, err)
	assert.False(t, kv.Positional())

	path, err := NewPathParametersBuilder().Parameters()
	require.NoError(t, err)
	assert.True(t, path.Positional())

	var nilParams *Parameters
	assert.False(t, nilParams.Positional())
	assert.Equal(t, 0, nilParams.Len())
	assert.Nil(t, nilParams.All())
}

func TestParametersBuilderValidation(t *testing.T) {
	t.Parallel()

	b := NewParametersBuilder().WithDelegateParameter("desc", "", nil)
	require.Error(t, b.Err())
	assert.True(t, IsInvalidArgument(b.Err()))
	params, err := b.Parameters()
	assert.Nil(t, params)
	assert.Equal(t, b.Err(), err)

	b = NewParametersBuilder().WithDelegateParameter("desc", "p", nil)
	require.Error(t, b.Err())
	assert.True(t, IsInvalidArgument(b.Err()))
}

func TestParametersAllReturnsCopy(t *testing.T) {
	t.Parallel()

	params, err := NewParametersBuilder().
		WithDelegateParameter("", "a", func(p interface{}) (interface{}, error) { return p, nil }).
		Parameters()
	require.NoError(t, err)

	out := params.All()
	out[0].Name = "mutated"
	assert.Equal(t, "a", params.All()[0].Name)
}

func TestParametersSnapshotDetachedFromBuilder(t *testing.T) {
	t.Parallel()

	b := NewParametersBuilder().
		WithDelegateParameter("", "a", func(p interface{}) (interface{}, error) { return p, nil })
	first, err := b.Parameters()
	require.NoError(t, err)

	b.WithDelegateParameter("", "b", func(p interface{}) (interface{}, error) { return p, nil })
	second, err := b.Parameters()
	require.NoError(t, err)

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, second.Len())
}
