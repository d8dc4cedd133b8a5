package store

import (
	"context"
	"testing"

	"github.com/pixelvault/pixelvault/internal/drivers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, container string) *ObjectStore {
	t.Helper()
	driver := drivers.NewLocalDriver(t.TempDir(), zap.NewNop())
	return New(driver, container, zap.NewNop())
}

func TestObjectStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "assets")

	require.NoError(t, s.Put(ctx, "photo.png", []byte{0x89, 0x50, 0x4e, 0x47}, "image/png"))

	data, err := s.Get(ctx, "photo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
}

func TestObjectStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "assets")

	_, err := s.Get(ctx, "missing.png")
	require.Error(t, err)
	assert.True(t, drivers.IsNotFound(err))
}

func TestObjectStore_Exists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "assetsoutput")

	ok, err := s.Exists(ctx, "photo_100_None.png")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "photo_100_None.png", []byte("variant"), "image/png"))

	ok, err = s.Exists(ctx, "photo_100_None.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestObjectStore_EnsureContainer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "assetsoutput")

	require.NoError(t, s.EnsureContainer(ctx))
	require.NoError(t, s.EnsureContainer(ctx))
	assert.Equal(t, "assetsoutput", s.Container())
}
