// Package wordpress proxies CMS content: it fetches pages and posts from a
// self-hosted WordPress or WordPress.com site, rewrites the HTML for safer
// rendering, and guarantees a featured image on every record.
package wordpress

// Author is the subset of CMS author data the frontend renders.
type Author struct {
	Name string `json:"name"`
}

// Post is the normalized shape shared by pages and posts, whichever upstream
// they came from.
type Post struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt,omitempty"`
	Date          string `json:"date"`
	FeaturedImage string `json:"featured_image"`
	Author        Author `json:"author"`
}
