package api

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pixelvault/pixelvault/internal/config"
	"github.com/pixelvault/pixelvault/internal/drivers"
	"github.com/pixelvault/pixelvault/internal/media"
	"github.com/pixelvault/pixelvault/internal/store"
	"github.com/pixelvault/pixelvault/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func encodeImage(t *testing.T, width, height int, format imaging.Format) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{B: uint8((x + y) % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

// newTestServer wires a full server over a local driver and seeds the
// source container with photo.png (400x200) and the placeholder.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	ctx := context.Background()
	cfg := config.Default()
	logger := zap.NewNop()

	driver := drivers.NewLocalDriver(t.TempDir(), logger)
	source := store.New(driver, cfg.Storage.SourceContainer, logger)
	cache := store.New(driver, cfg.Storage.CacheContainer, logger)

	require.NoError(t, source.Put(ctx, "photo.png", encodeImage(t, 400, 200, imaging.PNG), "image/png"))
	require.NoError(t, source.Put(ctx, cfg.Media.Placeholder, encodeImage(t, 300, 150, imaging.JPEG), "image/jpeg"))

	resolver := media.NewResolver(source, cfg.Media.Placeholder, logger)
	engine := transform.NewEngine(transform.PolicyFit, logger)
	svc := media.NewService(cache, resolver, engine, cfg.Media.DefaultSource, logger)

	return NewServer(cfg, logger, svc)
}

func doGet(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleMedia_MissingFilename(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/media")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Filename is required.\n", rec.Body.String())
}

func TestHandleMedia_MissAndHit(t *testing.T) {
	s := newTestServer(t)

	first := doGet(t, s, "/media?filename=photo.png&width=100")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "image/png", first.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=photo_100_None.png", first.Header().Get("Content-Disposition"))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	img, err := imaging.Decode(bytes.NewReader(first.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	second := doGet(t, s, "/media?filename=photo.png&width=100")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestHandleMedia_PassThrough(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/media?filename=photo.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
}

func TestHandleMedia_InvalidDimensions(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/media?filename=photo.png&width=abc",
		"/media?filename=photo.png&width=0",
		"/media?filename=photo.png&height=-5",
	} {
		rec := doGet(t, s, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandleMedia_UnsupportedFormat(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/media?filename=photo.png&format=tiff")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported format.\n", rec.Body.String())
}

func TestHandleMedia_FormatCaseInsensitive(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/media?filename=photo.png&format=GIF&width=50")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
}

func TestHandleMedia_MissingSourceFallsBack(t *testing.T) {
	s := newTestServer(t)

	viaFallback := doGet(t, s, "/media?filename=missing.png&width=100")
	require.Equal(t, http.StatusOK, viaFallback.Code)

	direct := doGet(t, s, "/media?filename=no-image.jpg&width=100")
	require.Equal(t, http.StatusOK, direct.Code)

	assert.Equal(t, direct.Header().Get("Content-Disposition"), viaFallback.Header().Get("Content-Disposition"))
}

func TestHandleMedia_SourceUnavailable(t *testing.T) {
	// No seeding at all: the placeholder is missing too.
	cfg := config.Default()
	logger := zap.NewNop()

	driver := drivers.NewLocalDriver(t.TempDir(), logger)
	source := store.New(driver, cfg.Storage.SourceContainer, logger)
	cache := store.New(driver, cfg.Storage.CacheContainer, logger)
	resolver := media.NewResolver(source, cfg.Media.Placeholder, logger)
	engine := transform.NewEngine(transform.PolicyFit, logger)
	s := NewServer(cfg, logger, media.NewService(cache, resolver, engine, cfg.Media.DefaultSource, logger))

	rec := doGet(t, s, "/media?filename=missing.png&width=100")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error downloading the image.\n", rec.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/health", "/ready", "/version"} {
		rec := doGet(t, s, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), target)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
