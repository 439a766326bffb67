package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/center-believer/backend/internal/content"
	"github.com/center-believer/backend/pkg/metrics"
)

const requestTimeout = 5 * time.Second

// ErrNotFound is returned when the CMS has no matching page or post.
var ErrNotFound = errors.New("content not found")

// UpstreamError wraps CMS transport and protocol failures. The HTTP layer
// surfaces Detail only outside production.
type UpstreamError struct {
	Op     string
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func upstreamErr(op string, err error) error {
	return &UpstreamError{Op: op, Detail: err.Error()}
}

const publicAPIBase = "https://public-api.wordpress.com/rest/v1.1"

// Client fetches and normalizes CMS content.
type Client struct {
	baseURL   string
	apiBase   string
	client    *http.Client
	fallbacks *ImageCache
}

// NewClient builds a client for the given WordPress base URL. fallbacks
// supplies featured images for records that lack one.
func NewClient(baseURL string, fallbacks *ImageCache) *Client {
	return &Client{
		baseURL:   baseURL,
		apiBase:   publicAPIBase,
		client:    &http.Client{Timeout: requestTimeout},
		fallbacks: fallbacks,
	}
}

// wpPage is the self-hosted REST v2 page shape, with embedded media/author.
type wpPage struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
	Embedded struct {
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
		} `json:"wp:featuredmedia"`
		Author []struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"_embedded"`
}

// wpcomPost is the WordPress.com v1.1 post shape, already flat.
type wpcomPost struct {
	ID            int64  `json:"ID"`
	Date          string `json:"date"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	FeaturedImage string `json:"featured_image"`
	Author        struct {
		Name string `json:"name"`
	} `json:"author"`
}

// FetchPage looks a page up by slug on the self-hosted REST API.
func (c *Client) FetchPage(ctx context.Context, slug string) (*Post, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/pages?slug=%s&_embed", c.baseURL, url.QueryEscape(slug))

	var pages []wpPage
	if err := c.getJSON(ctx, "fetch page", endpoint, &pages); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, ErrNotFound
	}

	page := pages[0]
	post := &Post{
		ID:      page.ID,
		Title:   page.Title.Rendered,
		Content: content.Optimize(page.Content.Rendered),
		Excerpt: page.Excerpt.Rendered,
		Date:    page.Date,
	}
	if len(page.Embedded.FeaturedMedia) > 0 {
		post.FeaturedImage = page.Embedded.FeaturedMedia[0].SourceURL
	}
	if len(page.Embedded.Author) > 0 {
		post.Author.Name = page.Embedded.Author[0].Name
	}
	c.ensureFeaturedImage(ctx, post)
	return post, nil
}

// FetchPosts lists posts through the WordPress.com public API for the
// configured site.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	host, err := c.siteHost()
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/sites/%s/posts", c.apiBase, host)

	var payload struct {
		Posts []wpcomPost `json:"posts"`
	}
	if err := c.getJSON(ctx, "fetch posts", endpoint, &payload); err != nil {
		return nil, err
	}

	out := make([]Post, 0, len(payload.Posts))
	for _, p := range payload.Posts {
		post := normalizePost(p)
		c.ensureFeaturedImage(ctx, &post)
		out = append(out, post)
	}
	return out, nil
}

// FetchPost retrieves a single post by id through the WordPress.com public
// API.
func (c *Client) FetchPost(ctx context.Context, id string) (*Post, error) {
	host, err := c.siteHost()
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/sites/%s/posts/%s", c.apiBase, host, url.PathEscape(id))

	var p wpcomPost
	if err := c.getJSON(ctx, "fetch post", endpoint, &p); err != nil {
		return nil, err
	}
	post := normalizePost(p)
	c.ensureFeaturedImage(ctx, &post)
	return &post, nil
}

func normalizePost(p wpcomPost) Post {
	return Post{
		ID:            p.ID,
		Title:         p.Title,
		Content:       content.Optimize(p.Content),
		Excerpt:       p.Excerpt,
		Date:          p.Date,
		FeaturedImage: p.FeaturedImage,
		Author:        Author{Name: p.Author.Name},
	}
}

func (c *Client) ensureFeaturedImage(ctx context.Context, p *Post) {
	if p.FeaturedImage == "" {
		p.FeaturedImage = c.fallbacks.Get(ctx)
	}
}

func (c *Client) siteHost() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Hostname() == "" {
		return "", &UpstreamError{Op: "resolve site", Detail: "WP_URL is not a valid URL"}
	}
	return u.Hostname(), nil
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return upstreamErr(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	metrics.ObserveUpstream("wordpress", err)
	if err != nil {
		return upstreamErr(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Op: op, Detail: fmt.Sprintf("upstream returned %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return upstreamErr(op, err)
	}
	return nil
}
