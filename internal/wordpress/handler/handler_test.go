package handler

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/center-believer/backend/internal/wordpress"
)

func newTestServer(baseURL string, production bool) *gin.Engine {
	cache := wordpress.NewImageCache("", nil, rand.New(rand.NewSource(1)))
	g := gin.New()
	NewHandler(wordpress.NewClient(baseURL, cache), production).Register(g.Group("/api/wordpress"))
	return g
}

func get(g *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestPage_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 3, "title": {"rendered": "Hi"}, "content": {"rendered": "<p>x</p>"}}]`))
	}))
	defer srv.Close()

	w := get(newTestServer(srv.URL, false), "/api/wordpress/pages/hi")
	require.Equal(t, http.StatusOK, w.Code)

	var post wordpress.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.Equal(t, "Hi", post.Title)
	require.NotEmpty(t, post.FeaturedImage)
}

func TestPage_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	w := get(newTestServer(srv.URL, false), "/api/wordpress/pages/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPage_UpstreamDetailOnlyInDevelopment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	w := get(newTestServer(srv.URL, false), "/api/wordpress/pages/hi")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var dev map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dev))
	require.Contains(t, dev["error"], "502")

	w = get(newTestServer(srv.URL, true), "/api/wordpress/pages/hi")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var prod map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prod))
	require.Empty(t, prod["error"], "production responses hide upstream detail")
}
