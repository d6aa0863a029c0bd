package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleece-labs/fleece-api/services"
	"github.com/fleece-labs/fleece-api/utils"
)

type ImagesHandler struct {
	Images *services.ImageService
}

// GetImage serves card art for the given URL. The endpoint never fails
// on a bad upstream: fetch and decode problems degrade to the
// placeholder, with X-Image-Source / X-Placeholder-Reason headers
// saying what happened.
func (h *ImagesHandler) GetImage(c *gin.Context) {
	url := c.Query("url")

	result, err := h.Images.DisplayCardImage(c.Request.Context(), url)
	if err != nil {
		utils.SafeError("Image lookup failed for %s: %v", url, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image unavailable"})
		return
	}

	data, err := services.EncodePNG(result.Image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
		return
	}

	utils.LogImageFetch(url, string(result.Source), string(result.Reason))

	c.Header("X-Image-Source", string(result.Source))
	if result.Reason != "" {
		c.Header("X-Placeholder-Reason", string(result.Reason))
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", data)
}

type preloadRequest struct {
	URLs     []string `json:"urls" binding:"required"`
	MaxCards int      `json:"max_cards"`
}

type preloadResult struct {
	Source string `json:"source"`
	Reason string `json:"reason,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PreloadImages warms the cache for a page's first few cards. Results
// come back keyed by URL; the pool collects them in completion order.
func (h *ImagesHandler) PreloadImages(c *gin.Context) {
	var req preloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxCards <= 0 {
		req.MaxCards = 5
	}

	results := h.Images.PreloadImages(c.Request.Context(), req.URLs, req.MaxCards)

	out := make(map[string]preloadResult, len(results))
	for url, img := range results {
		bounds := img.Image.Bounds()
		out[url] = preloadResult{
			Source: string(img.Source),
			Reason: string(img.Reason),
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		}
	}

	c.JSON(http.StatusOK, gin.H{"images": out})
}
