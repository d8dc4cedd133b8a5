package media

import (
	"context"
	"testing"

	"github.com/pixelvault/pixelvault/internal/drivers"
	"github.com/pixelvault/pixelvault/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	source := store.New(drivers.NewLocalDriver(t.TempDir(), zap.NewNop()), sourceContainer, zap.NewNop())
	r := NewResolver(source, placeholderName, zap.NewNop())

	require.NoError(t, source.Put(ctx, "photo.png", []byte("photo-bytes"), "image/png"))
	require.NoError(t, source.Put(ctx, placeholderName, []byte("placeholder-bytes"), "image/jpeg"))

	t.Run("Present", func(t *testing.T) {
		data, name, err := r.Resolve(ctx, "photo.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("photo-bytes"), data)
		assert.Equal(t, "photo.png", name)
	})

	t.Run("FallsBackToPlaceholder", func(t *testing.T) {
		data, name, err := r.Resolve(ctx, "missing.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("placeholder-bytes"), data)
		assert.Equal(t, placeholderName, name, "effective name must be the placeholder")
	})
}

func TestResolver_PlaceholderMissing(t *testing.T) {
	ctx := context.Background()
	source := store.New(drivers.NewLocalDriver(t.TempDir(), zap.NewNop()), sourceContainer, zap.NewNop())
	r := NewResolver(source, placeholderName, zap.NewNop())

	_, _, err := r.Resolve(ctx, "missing.png")
	require.Error(t, err)

	var sue *SourceUnavailableError
	require.ErrorAs(t, err, &sue)
	assert.Equal(t, "missing.png", sue.Name)
}
