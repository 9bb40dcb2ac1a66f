package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/seo-audit/pkg/utils"
)

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore("", "example.com", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewBadgerStore(t *testing.T) {
	t.Run("in memory starts empty", func(t *testing.T) {
		store := newTestStore(t)
		count, err := store.SeenCount()
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("on disk wipes previous run", func(t *testing.T) {
		dir := t.TempDir()

		store1, err := NewBadgerStore(dir, "example.com", testLogger())
		require.NoError(t, err)
		_, err = store1.MarkSeen("https://example.com/a")
		require.NoError(t, err)
		require.NoError(t, store1.Close())

		_, err = os.Stat(filepath.Join(dir, "example.com_seen_db"))
		require.NoError(t, err)

		store2, err := NewBadgerStore(dir, "example.com", testLogger())
		require.NoError(t, err)
		t.Cleanup(func() { store2.Close() })

		seen, err := store2.IsSeen("https://example.com/a")
		require.NoError(t, err)
		assert.False(t, seen)
	})
}

func TestMarkSeen_Idempotent(t *testing.T) {
	store := newTestStore(t)

	added, err := store.MarkSeen("https://example.com/page")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.MarkSeen("https://example.com/page")
	require.NoError(t, err)
	assert.False(t, added)

	seen, err := store.IsSeen("https://example.com/page")
	require.NoError(t, err)
	assert.True(t, seen)

	count, _ := store.SeenCount()
	assert.Equal(t, 1, count)
}

func TestMarkSeen_Concurrent(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.MarkSeen(fmt.Sprintf("https://example.com/%d", i%5))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, _ := store.SeenCount()
	assert.Equal(t, 5, count)
}

func TestClosedStore(t *testing.T) {
	store, err := NewBadgerStore("", "example.com", testLogger())
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.MarkSeen("https://example.com/")
	assert.ErrorIs(t, err, utils.ErrDatabase)
}
