package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleece-labs/fleece-api/services"
)

func newImagesRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := services.NewImageService(services.ImageConfig{})
	require.NoError(t, err)

	h := &ImagesHandler{Images: svc}
	r := gin.New()
	r.GET("/images", h.GetImage)
	r.POST("/images/preload", h.PreloadImages)
	return r
}

func TestGetImage_EmptyURLServesPlaceholderPNG(t *testing.T) {
	r := newImagesRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/images", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "placeholder", w.Header().Get("X-Image-Source"))
	assert.Equal(t, "empty_url", w.Header().Get("X-Placeholder-Reason"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 340, img.Bounds().Dx())
	assert.Equal(t, 220, img.Bounds().Dy())
}

func TestGetImage_UnreachableURLServesPlaceholder(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := upstream.URL
	upstream.Close()

	r := newImagesRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/images?url="+deadURL, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "placeholder", w.Header().Get("X-Image-Source"))
	assert.Equal(t, "network_error", w.Header().Get("X-Placeholder-Reason"))
}

func TestPreloadImages_RequiresURLs(t *testing.T) {
	r := newImagesRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/images/preload", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
