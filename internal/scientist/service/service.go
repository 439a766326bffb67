package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/center-believer/backend/internal/scientist"
	"github.com/center-believer/backend/internal/scientist/repository"
	"github.com/center-believer/backend/internal/storage"
	"github.com/center-believer/backend/pkg/logger"
)

// ErrValidation marks client errors that the HTTP layer maps to 400.
var ErrValidation = errors.New("validation failed")

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// ImageStore is the slice of the image host the scientist service needs.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	ObjectURL(key string) string
}

// Upload is an image file received with a create or update request.
type Upload struct {
	Filename string
	Data     []byte
}

// CreateInput carries a new scientist. Image comes either from Upload or
// from ImageURL; one of the two is required.
type CreateInput struct {
	Name         string
	Title        string
	Description  string
	Achievements []string
	BirthYear    *int
	DeathYear    *int
	Subject      string
	Color        string
	ImageURL     string
	Upload       *Upload
}

// UpdateInput carries a partial update; nil fields stay untouched. A new
// Upload replaces the stored image.
type UpdateInput struct {
	Name         *string
	Title        *string
	Description  *string
	Achievements []string
	BirthYear    *int
	DeathYear    *int
	Subject      *string
	Color        *string
	ImageURL     *string
	Upload       *Upload
}

type Service struct {
	repo   repository.Repository
	images ImageStore
	proc   *storage.ImageProcessor

	// rngMu guards rng; *rand.Rand is not safe for concurrent use and
	// creates run on arbitrary request goroutines.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService builds the scientist service. rng drives palette selection and
// may be nil, in which case a time-seeded source is used.
func NewService(repo repository.Repository, images ImageStore, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		repo:   repo,
		images: images,
		proc:   storage.NewImageProcessor(),
		rng:    rng,
	}
}

func (s *Service) List(ctx context.Context) ([]*scientist.Scientist, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, sc := range list {
		s.resolve(sc)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (*scientist.Scientist, error) {
	sc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolve(sc)
	return sc, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*scientist.Scientist, error) {
	name := strings.TrimSpace(in.Name)
	subject := strings.TrimSpace(in.Subject)
	if name == "" {
		return nil, validationError("name is required")
	}
	if subject == "" {
		return nil, validationError("subject is required")
	}

	imageRef, err := s.storeImage(ctx, in.Upload, in.ImageURL)
	if err != nil {
		return nil, err
	}
	if imageRef == "" {
		return nil, validationError("image is required (upload a file or supply an image URL)")
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = s.randomColor()
	}

	sc := &scientist.Scientist{
		Name:         name,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Achievements: trimAll(in.Achievements),
		BirthYear:    in.BirthYear,
		DeathYear:    in.DeathYear,
		Subject:      subject,
		Color:        color,
		Image:        imageRef,
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, err
	}
	s.resolve(sc)
	return sc, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*scientist.Scientist, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := scientist.UpdateFields{
		Name:        trimPtr(in.Name),
		Title:       trimPtr(in.Title),
		Description: trimPtr(in.Description),
		BirthYear:   in.BirthYear,
		DeathYear:   in.DeathYear,
		Subject:     trimPtr(in.Subject),
		Color:       trimPtr(in.Color),
	}
	if in.Achievements != nil {
		fields.Achievements = trimAll(in.Achievements)
	}
	if fields.Name != nil && *fields.Name == "" {
		return nil, validationError("name must not be empty")
	}
	if fields.Subject != nil && *fields.Subject == "" {
		return nil, validationError("subject must not be empty")
	}

	oldRef := existing.Image
	replacedImage := false
	if in.Upload != nil {
		ref, err := s.storeImage(ctx, in.Upload, "")
		if err != nil {
			return nil, err
		}
		fields.Image = &ref
		replacedImage = true
	} else if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != "" {
		ref := strings.TrimSpace(*in.ImageURL)
		fields.Image = &ref
		replacedImage = ref != oldRef
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	// The record is already updated; losing the old object only orphans it.
	if replacedImage {
		s.removeStoredImage(ctx, oldRef)
	}

	s.resolve(updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeStoredImage(ctx, existing.Image)
	return nil
}

// storeImage validates and uploads a file together with its derived
// thumbnail, returning the stored object key; without a file the trimmed URL
// is returned as-is.
func (s *Service) storeImage(ctx context.Context, up *Upload, imageURL string) (string, error) {
	if up == nil {
		return strings.TrimSpace(imageURL), nil
	}
	if err := s.proc.ValidateUpload(up.Filename, int64(len(up.Data))); err != nil {
		return "", fmt.Errorf("%w: %s", ErrValidation, err)
	}

	thumb, err := s.proc.Thumbnail(up.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrValidation, err)
	}

	key := storage.NewObjectKey(up.Filename)
	if _, err := s.images.Upload(ctx, key, up.Data, storage.ContentType(up.Filename)); err != nil {
		return "", err
	}
	if _, err := s.images.Upload(ctx, storage.ThumbKey(key), thumb, "image/jpeg"); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) randomColor() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return scientist.RandomColor(s.rng)
}

// removeStoredImage deletes the original and thumbnail objects for a managed
// image reference. Best-effort: failures are logged, never propagated.
func (s *Service) removeStoredImage(ctx context.Context, ref string) {
	if ref == "" || storage.IsExternalURL(ref) {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		logger.Warnf("failed to delete image object %s: %v", ref, err)
	}
	if err := s.images.Delete(ctx, storage.ThumbKey(ref)); err != nil {
		logger.Warnf("failed to delete thumbnail object %s: %v", storage.ThumbKey(ref), err)
	}
}

// resolve turns the stored image reference into public Image/Thumbnail URLs.
func (s *Service) resolve(sc *scientist.Scientist) {
	ref := sc.Image
	if ref == "" {
		return
	}
	if storage.IsExternalURL(ref) {
		sc.Thumbnail = ref
		return
	}
	sc.Image = s.images.ObjectURL(ref)
	sc.Thumbnail = s.images.ObjectURL(storage.ThumbKey(ref))
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
