package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// IMAGE SERVICE - Fetches and caches remote card art
// Always hands back something displayable: the fetched image when the
// URL cooperates, the generated placeholder when it does not.
// ============================================================================

// ImageSource says where a returned image came from.
type ImageSource string

const (
	SourceCache       ImageSource = "cache"
	SourceFetch       ImageSource = "fetch"
	SourcePlaceholder ImageSource = "placeholder"
)

// PlaceholderReason explains why a caller got the placeholder instead
// of the remote image.
type PlaceholderReason string

const (
	ReasonEmptyURL     PlaceholderReason = "empty_url"
	ReasonBadURL       PlaceholderReason = "bad_url"
	ReasonNetworkError PlaceholderReason = "network_error"
	ReasonBadStatus    PlaceholderReason = "bad_status"
	ReasonDecodeError  PlaceholderReason = "decode_error"
)

// CardImage is the result of an image lookup. Reason is set only when
// Source is SourcePlaceholder.
type CardImage struct {
	Image  image.Image
	Source ImageSource
	Reason PlaceholderReason
}

// ImageCache stores raw fetched bytes keyed by URL. The default
// implementation is a bounded LRU whose entries expire after the
// configured TTL; stale entries miss on Get and are refetched.
type ImageCache interface {
	Get(url string) ([]byte, bool)
	Put(url string, data []byte)
}

type lruImageCache struct {
	lru *expirable.LRU[string, []byte]
}

func (c *lruImageCache) Get(url string) ([]byte, bool) { return c.lru.Get(url) }
func (c *lruImageCache) Put(url string, data []byte)   { c.lru.Add(url, data) }

// ImageConfig tunes the service. Zero values get sensible defaults.
type ImageConfig struct {
	CacheSize    int
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

const (
	defaultCacheSize    = 32
	defaultCacheTTL     = time.Hour
	defaultFetchTimeout = 5 * time.Second
	preloadWorkers      = 5
)

type ImageService struct {
	cache       ImageCache
	httpClient  *http.Client
	placeholder *image.RGBA
}

// NewImageService builds the service and pre-renders the placeholder.
// Rendering happens here, not at package load, so a failure surfaces as
// a constructible error the composition root can act on.
func NewImageService(cfg ImageConfig) (*ImageService, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	placeholder, err := renderPlaceholder()
	if err != nil {
		return nil, fmt.Errorf("failed to render placeholder image: %w", err)
	}

	return &ImageService{
		cache: &lruImageCache{
			lru: expirable.NewLRU[string, []byte](cfg.CacheSize, nil, cfg.CacheTTL),
		},
		httpClient:  &http.Client{Timeout: cfg.FetchTimeout},
		placeholder: placeholder,
	}, nil
}

// DisplayCardImage returns a displayable image for the URL. The
// fallback chain is: cache hit, HTTP GET, decode, placeholder copy,
// placeholder regeneration. Fetch and decode failures never propagate
// to the caller; only a failed placeholder regeneration returns an
// error, and then the image is nil.
func (s *ImageService) DisplayCardImage(ctx context.Context, url string) (*CardImage, error) {
	if url == "" {
		return s.placeholderCopy(ReasonEmptyURL)
	}

	data, cached := s.cache.Get(url)
	source := SourceCache
	if !cached {
		fetched, reason := s.fetch(ctx, url)
		if reason != "" {
			return s.placeholderCopy(reason)
		}
		// Cache on 200 before decoding, so a URL serving junk is not
		// re-fetched on every render.
		s.cache.Put(url, fetched)
		data = fetched
		source = SourceFetch
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("Could not decode image from %s: %v", url, err)
		return s.placeholderCopy(ReasonDecodeError)
	}

	return &CardImage{Image: img, Source: source}, nil
}

// fetch performs the one-shot GET. A non-empty reason means the caller
// should fall back to the placeholder.
func (s *ImageService) fetch(ctx context.Context, url string) ([]byte, PlaceholderReason) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("Invalid image URL %q: %v", url, err)
		return nil, ReasonBadURL
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Error fetching image from %s: %v", url, err)
		return nil, ReasonNetworkError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Image fetch %s returned status %d", url, resp.StatusCode)
		return nil, ReasonBadStatus
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading image body from %s: %v", url, err)
		return nil, ReasonNetworkError
	}

	return body, ""
}

func (s *ImageService) placeholderCopy(reason PlaceholderReason) (*CardImage, error) {
	if s.placeholder == nil {
		// Last resort: regenerate from the same drawing recipe.
		img, err := renderPlaceholder()
		if err != nil {
			return nil, fmt.Errorf("placeholder unavailable: %w", err)
		}
		s.placeholder = img
	}
	return &CardImage{
		Image:  copyImage(s.placeholder),
		Source: SourcePlaceholder,
		Reason: reason,
	}, nil
}

// PreloadImages fetches up to maxCards images concurrently through a
// bounded worker pool. Results are keyed by URL; completion order does
// not matter to callers.
func (s *ImageService) PreloadImages(ctx context.Context, urls []string, maxCards int) map[string]*CardImage {
	if maxCards > 0 && len(urls) > maxCards {
		urls = urls[:maxCards]
	}

	results := make(map[string]*CardImage, len(urls))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(preloadWorkers)
	for _, url := range urls {
		g.Go(func() error {
			img, err := s.DisplayCardImage(ctx, url)
			if err != nil {
				log.Printf("Error preloading image %s: %v", url, err)
				return nil
			}
			mu.Lock()
			results[url] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// EncodePNG serializes an image for the HTTP layer.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
