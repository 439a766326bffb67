package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/center-believer/backend/internal/wordpress"
	"github.com/center-believer/backend/pkg/logger"
)

type Handler struct {
	client     *wordpress.Client
	production bool
}

// NewHandler wires the CMS client. production suppresses upstream error
// detail in responses.
func NewHandler(client *wordpress.Client, production bool) *Handler {
	return &Handler{client: client, production: production}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/pages/:slug", h.page)
	rg.GET("/posts", h.posts)
	rg.GET("/posts/:id", h.post)
}

func (h *Handler) page(c *gin.Context) {
	post, err := h.client.FetchPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) posts(c *gin.Context) {
	posts, err := h.client.FetchPosts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) post(c *gin.Context) {
	post, err := h.client.FetchPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, wordpress.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "content not found"})
		return
	}

	logger.Errorf("wordpress proxy: %v", err)
	body := gin.H{"message": "failed to fetch content"}
	var ue *wordpress.UpstreamError
	if errors.As(err, &ue) && !h.production {
		body["error"] = ue.Detail
	}
	c.JSON(http.StatusInternalServerError, body)
}
