package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/center-believer/backend/pkg/logger"
)

// StaticFallbackImage is served when the cache is empty and a refresh cannot
// be completed. It must always resolve to a renderable image.
const StaticFallbackImage = "https://images.unsplash.com/photo-1506744038136-46273834b3fb?w=1200&q=80"

const imageCacheTTL = 10 * time.Minute

// seedImages makes the cache useful before the first refresh completes.
var seedImages = []string{
	"https://images.unsplash.com/photo-1470770841072-f978cf4d019e?w=1200&q=80",
	"https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=1200&q=80",
	"https://images.unsplash.com/photo-1501785888041-af3ef285b470?w=1200&q=80",
	"https://images.unsplash.com/photo-1472214103451-9374bd1c798e?w=1200&q=80",
}

// ImageCache hands out fallback featured images. Entries expire after a fixed
// TTL; an expired cache keeps serving stale members while a background
// refresh pulls a new list from the configured source URL.
type ImageCache struct {
	sourceURL string
	client    *http.Client
	now       func() time.Time

	mu         sync.Mutex
	urls       []string
	fetchedAt  time.Time
	refreshing bool
	rng        *rand.Rand
}

// NewImageCache builds a cache pre-seeded with the built-in list. sourceURL
// may be empty, in which case the seed list never expires. now and rng are
// injectable for tests; pass nil for production defaults.
func NewImageCache(sourceURL string, now func() time.Time, rng *rand.Rand) *ImageCache {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ImageCache{
		sourceURL: sourceURL,
		client:    &http.Client{Timeout: requestTimeout},
		now:       now,
		urls:      append([]string(nil), seedImages...),
		rng:       rng,
	}
}

// Get returns one image URL. It never fails: an expired cache serves a stale
// member while refreshing, and an empty cache falls back to the static URL.
func (c *ImageCache) Get(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiredLocked() && !c.refreshing {
		c.refreshing = true
		go c.refresh()
	}
	if len(c.urls) == 0 {
		return StaticFallbackImage
	}
	return c.urls[c.rng.Intn(len(c.urls))]
}

func (c *ImageCache) expiredLocked() bool {
	if c.sourceURL == "" {
		return false
	}
	return c.now().Sub(c.fetchedAt) >= imageCacheTTL
}

// refresh replaces the list from the source URL. Failures keep the stale
// list; the next expired Get schedules another attempt.
func (c *ImageCache) refresh() {
	urls, err := c.fetchSourceList()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing = false
	if err != nil {
		logger.Warnf("fallback image refresh failed, serving stale list: %v", err)
		return
	}
	c.urls = urls
	c.fetchedAt = c.now()
}

func (c *ImageCache) fetchSourceList() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sourceURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image source returned %d", resp.StatusCode)
	}

	var urls []string
	if err := json.NewDecoder(resp.Body).Decode(&urls); err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("image source returned an empty list")
	}
	return urls, nil
}
