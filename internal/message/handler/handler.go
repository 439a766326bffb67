package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/center-believer/backend/internal/message/service"
	"github.com/center-believer/backend/pkg/logger"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.latest)
	rg.GET("/history", h.history)
	rg.POST("", h.create)
}

func (h *Handler) latest(c *gin.Context) {
	msgs, err := h.svc.Latest(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *Handler) history(c *gin.Context) {
	before := time.Now().UTC()
	if raw := c.Query("before"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "before must be a millisecond timestamp"})
			return
		}
		before = time.UnixMilli(ms).UTC()
	}

	msgs, err := h.svc.Before(c.Request.Context(), before, queryInt(c, "limit"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

type createRequest struct {
	Content        string `json:"content"`
	Author         string `json:"author"`
	IsAnonymous    bool   `json:"isAnonymous"`
	RecaptchaToken string `json:"recaptchaToken"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	msg, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Content:      req.Content,
		Author:       req.Author,
		IsAnonymous:  req.IsAnonymous,
		CaptchaToken: req.RecaptchaToken,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrCaptcha):
		c.JSON(http.StatusBadRequest, gin.H{"message": "captcha verification failed"})
	default:
		logger.Errorf("message handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
