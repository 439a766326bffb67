package wordpress

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const pageFixture = `[{
  "id": 42,
  "date": "2026-02-10T08:00:00",
  "title": {"rendered": "About Us"},
  "content": {"rendered": "<p>Welcome.</p><img src=\"/x.png\">"},
  "excerpt": {"rendered": "<p>Short.</p>"},
  "_embedded": {
    "wp:featuredmedia": [{"source_url": "http://cms.test/media/hero.jpg"}],
    "author": [{"name": "Editor"}]
  }
}]`

func newPageServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/pages", r.URL.Path)
		require.Equal(t, "about", r.URL.Query().Get("slug"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func testCache() *ImageCache {
	return NewImageCache("", nil, rand.New(rand.NewSource(1)))
}

func TestFetchPage(t *testing.T) {
	srv := newPageServer(t, pageFixture, http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, testCache())
	post, err := client.FetchPage(context.Background(), "about")
	require.NoError(t, err)

	require.Equal(t, int64(42), post.ID)
	require.Equal(t, "About Us", post.Title)
	require.Equal(t, "<p>Short.</p>", post.Excerpt)
	require.Equal(t, "http://cms.test/media/hero.jpg", post.FeaturedImage)
	require.Equal(t, "Editor", post.Author.Name)
	require.Contains(t, post.Content, `loading="lazy"`, "content passes through the optimizer")
}

func TestFetchPage_NotFound(t *testing.T) {
	srv := newPageServer(t, `[]`, http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, testCache())
	_, err := client.FetchPage(context.Background(), "about")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFetchPage_BackfillsFeaturedImage(t *testing.T) {
	fixture := `[{"id": 7, "title": {"rendered": "Plain"}, "content": {"rendered": "<p>x</p>"}}]`
	srv := newPageServer(t, fixture, http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, testCache())
	post, err := client.FetchPage(context.Background(), "about")
	require.NoError(t, err)
	require.NotEmpty(t, post.FeaturedImage)
	require.Contains(t, seedImages, post.FeaturedImage)
}

func TestFetchPage_UpstreamError(t *testing.T) {
	srv := newPageServer(t, `boom`, http.StatusBadGateway)
	defer srv.Close()

	client := NewClient(srv.URL, testCache())
	_, err := client.FetchPage(context.Background(), "about")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	require.Contains(t, ue.Detail, "502")
}

func TestFetchPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sites/cms.test/posts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"posts": [
		  {"ID": 1, "title": "First", "content": "<img src=\"a.png\">", "date": "2026-01-01",
		   "featured_image": "", "author": {"name": "Editor"}},
		  {"ID": 2, "title": "Second", "content": "<p>two</p>", "date": "2026-01-02",
		   "featured_image": "http://cms.test/b.jpg", "author": {"name": "Editor"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient("http://cms.test", testCache())
	client.apiBase = srv.URL

	posts, err := client.FetchPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.Contains(t, posts[0].Content, `loading="lazy"`)
	require.NotEmpty(t, posts[0].FeaturedImage, "missing featured image is backfilled")
	require.Equal(t, "http://cms.test/b.jpg", posts[1].FeaturedImage)
}

func TestFetchPost_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown_post"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("http://cms.test", testCache())
	client.apiBase = srv.URL

	_, err := client.FetchPost(context.Background(), "999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFetchPosts_InvalidBaseURL(t *testing.T) {
	client := NewClient("://not-a-url", testCache())
	_, err := client.FetchPosts(context.Background())

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
}
