package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", []byte(`{"notes":"wip"}`)))

	value, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"notes":"wip"}`), value)

	require.NoError(t, store.Delete(ctx, "user-1"))

	_, err = store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", []byte("a")))
	require.NoError(t, store.Put(ctx, "user-1", []byte("b")))

	value, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), value)
}

func TestMemoryStoreRejectsBlankKey(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, "  ", nil), ErrInvalidKey)
	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(ctx, ""), ErrInvalidKey)
}

func TestMemoryStoreCopiesValue(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	buf := []byte("draft")
	require.NoError(t, store.Put(ctx, "user-1", buf))
	buf[0] = 'x'

	value, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("draft"), value)
}
