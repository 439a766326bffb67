package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/center-believer/backend/internal/scientist/repository"
	"github.com/center-believer/backend/internal/scientist/service"
	"github.com/center-believer/backend/pkg/logger"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the scientist CRUD routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// scientistForm binds both JSON bodies and (multipart) form fields; pointers
// distinguish absent fields for partial updates.
type scientistForm struct {
	Name         *string  `json:"name" form:"name"`
	Title        *string  `json:"title" form:"title"`
	Description  *string  `json:"description" form:"description"`
	Achievements []string `json:"achievements" form:"achievements"`
	BirthYear    *int     `json:"birthYear" form:"birthYear"`
	DeathYear    *int     `json:"deathYear" form:"deathYear"`
	Subject      *string  `json:"subject" form:"subject"`
	Color        *string  `json:"color" form:"color"`
	Image        *string  `json:"image" form:"image"`
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) create(c *gin.Context) {
	var form scientistForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	upload, err := h.readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	in := service.CreateInput{
		Name:         deref(form.Name),
		Title:        deref(form.Title),
		Description:  deref(form.Description),
		Achievements: form.Achievements,
		BirthYear:    form.BirthYear,
		DeathYear:    form.DeathYear,
		Subject:      deref(form.Subject),
		Color:        deref(form.Color),
		ImageURL:     deref(form.Image),
		Upload:       upload,
	}

	s, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) update(c *gin.Context) {
	var form scientistForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	upload, err := h.readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	in := service.UpdateInput{
		Name:         form.Name,
		Title:        form.Title,
		Description:  form.Description,
		Achievements: form.Achievements,
		BirthYear:    form.BirthYear,
		DeathYear:    form.DeathYear,
		Subject:      form.Subject,
		Color:        form.Color,
		ImageURL:     form.Image,
		Upload:       upload,
	}

	s, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "scientist deleted"})
}

// readUpload extracts an optional multipart image file.
func (h *Handler) readUpload(c *gin.Context) (*service.Upload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	data, err := readFile(fh)
	if err != nil {
		return nil, err
	}
	return &service.Upload{Filename: fh.Filename, Data: data}, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "scientist not found"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		logger.Errorf("scientist request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
