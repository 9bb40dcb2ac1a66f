package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_PushIdempotent(t *testing.T) {
	f := NewFrontier(newStore(t))

	added, err := f.Push(origin + "/a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.Push(origin + "/a")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = f.Push(origin + "/a#section")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, 1, f.Len())
}

func TestFrontier_SharedStore(t *testing.T) {
	store := newStore(t)
	first := NewFrontier(store)
	second := NewFrontier(store)

	_, err := first.Push(origin + "/a")
	require.NoError(t, err)

	added, err := second.Push(origin + "/a")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, second.Len())

	count, err := store.SeenCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFrontier_PopBatch(t *testing.T) {
	f := NewFrontier(newStore(t))
	for _, p := range []string{"/1", "/2", "/3"} {
		_, err := f.Push(origin + p)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{origin + "/1", origin + "/2"}, f.PopBatch(2))
	assert.Equal(t, []string{origin + "/3"}, f.PopBatch(5))
	assert.Nil(t, f.PopBatch(5))
	assert.Equal(t, 0, f.Len())

	added, err := f.Push(origin + "/1")
	require.NoError(t, err)
	assert.False(t, added, "popped URLs stay seen")
}
