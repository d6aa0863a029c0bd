package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T, cfg ImageConfig) *ImageService {
	t.Helper()
	svc, err := NewImageService(cfg)
	require.NoError(t, err)
	return svc
}

func TestDisplayCardImage_FetchThenCacheHit(t *testing.T) {
	pngBytes := testPNG(t)
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	}))
	defer server.Close()

	svc := newTestService(t, ImageConfig{})

	first, err := svc.DisplayCardImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, SourceFetch, first.Source)
	assert.Equal(t, 16, first.Image.Bounds().Dx())
	assert.Equal(t, 10, first.Image.Bounds().Dy())

	second, err := svc.DisplayCardImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, second.Source)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits), "second call within TTL must not hit the network")
}

func TestDisplayCardImage_NetworkFailureReturnsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close() // connection refused from here on

	svc := newTestService(t, ImageConfig{})

	result, err := svc.DisplayCardImage(context.Background(), deadURL)
	require.NoError(t, err)
	require.NotNil(t, result.Image)
	assert.Equal(t, SourcePlaceholder, result.Source)
	assert.Equal(t, ReasonNetworkError, result.Reason)
	assert.Equal(t, PlaceholderWidth, result.Image.Bounds().Dx())
	assert.Equal(t, PlaceholderHeight, result.Image.Bounds().Dy())
}

func TestDisplayCardImage_Non200ReturnsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := newTestService(t, ImageConfig{})

	result, err := svc.DisplayCardImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, SourcePlaceholder, result.Source)
	assert.Equal(t, ReasonBadStatus, result.Reason)
}

func TestDisplayCardImage_UndecodableBodyReturnsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not an image"))
	}))
	defer server.Close()

	svc := newTestService(t, ImageConfig{})

	result, err := svc.DisplayCardImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, SourcePlaceholder, result.Source)
	assert.Equal(t, ReasonDecodeError, result.Reason)
}

func TestDisplayCardImage_EmptyURLReturnsPlaceholder(t *testing.T) {
	svc := newTestService(t, ImageConfig{})

	result, err := svc.DisplayCardImage(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, SourcePlaceholder, result.Source)
	assert.Equal(t, ReasonEmptyURL, result.Reason)
	assert.Equal(t, 340, result.Image.Bounds().Dx())
	assert.Equal(t, 220, result.Image.Bounds().Dy())
}

func TestDisplayCardImage_TimeoutReturnsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	svc := newTestService(t, ImageConfig{FetchTimeout: 50 * time.Millisecond})

	result, err := svc.DisplayCardImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, SourcePlaceholder, result.Source)
	assert.Equal(t, ReasonNetworkError, result.Reason)
}

func TestDisplayCardImage_ExpiredEntryIsRefetched(t *testing.T) {
	pngBytes := testPNG(t)
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write(pngBytes)
	}))
	defer server.Close()

	svc := newTestService(t, ImageConfig{CacheTTL: 50 * time.Millisecond})

	_, err := svc.DisplayCardImage(context.Background(), server.URL)
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt64(&hits))

	time.Sleep(150 * time.Millisecond)

	result, err := svc.DisplayCardImage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, SourceFetch, result.Source)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits), "stale entry must trigger a new network call")
}

func TestPlaceholderCopiesAreIndependent(t *testing.T) {
	svc := newTestService(t, ImageConfig{})

	a, err := svc.DisplayCardImage(context.Background(), "")
	require.NoError(t, err)
	b, err := svc.DisplayCardImage(context.Background(), "")
	require.NoError(t, err)

	rgbaA, ok := a.Image.(*image.RGBA)
	require.True(t, ok)
	rgbaB, ok := b.Image.(*image.RGBA)
	require.True(t, ok)

	before := rgbaB.RGBAAt(5, 5)
	rgbaA.SetRGBA(5, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	assert.Equal(t, before, rgbaB.RGBAAt(5, 5), "mutating one copy must not affect the other")
}

func TestPreloadImages(t *testing.T) {
	pngBytes := testPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write(pngBytes)
	}))
	defer server.Close()

	svc := newTestService(t, ImageConfig{})

	urls := []string{
		server.URL + "/a",
		server.URL + "/b",
		server.URL + "/c",
		server.URL + "/missing",
		server.URL + "/d",
		server.URL + "/e", // beyond maxCards, must be skipped
	}

	results := svc.PreloadImages(context.Background(), urls, 5)
	require.Len(t, results, 5)
	assert.NotContains(t, results, server.URL+"/e")

	for _, u := range urls[:3] {
		require.Contains(t, results, u)
		assert.NotEqual(t, SourcePlaceholder, results[u].Source)
	}
	require.Contains(t, results, server.URL+"/missing")
	assert.Equal(t, SourcePlaceholder, results[server.URL+"/missing"].Source)
	assert.Equal(t, ReasonBadStatus, results[server.URL+"/missing"].Reason)
}
