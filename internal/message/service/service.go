package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/center-believer/backend/internal/captcha"
	"github.com/center-believer/backend/internal/message"
	"github.com/center-believer/backend/internal/message/repository"
)

// ErrValidation marks client errors that the HTTP layer maps to 400.
var ErrValidation = errors.New("validation failed")

// ErrCaptcha is returned when the captcha token does not verify.
var ErrCaptcha = errors.New("captcha verification failed")

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

const (
	// DefaultLatestLimit applies to the landing-page read.
	DefaultLatestLimit = 5
	// DefaultHistoryLimit applies to paginated history reads.
	DefaultHistoryLimit = 10
	// MaxLimit caps caller-supplied limits on both reads.
	MaxLimit = 50
)

// CreateInput carries one submission from the guestbook form.
type CreateInput struct {
	Content      string
	Author       string
	IsAnonymous  bool
	CaptchaToken string
}

type Service struct {
	repo     repository.Repository
	verifier captcha.Verifier
}

func NewService(repo repository.Repository, verifier captcha.Verifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

func (s *Service) Latest(ctx context.Context, limit int) ([]message.Message, error) {
	return s.repo.Latest(ctx, clampLimit(limit, DefaultLatestLimit))
}

func (s *Service) Before(ctx context.Context, t time.Time, limit int) ([]message.Message, error) {
	return s.repo.Before(ctx, t, clampLimit(limit, DefaultHistoryLimit))
}

// Create validates the submission before spending an outbound captcha call,
// then verifies the token and persists the message.
func (s *Service) Create(ctx context.Context, in CreateInput) (*message.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, validationError("content is required")
	}
	if len([]rune(content)) > message.MaxContentLen {
		return nil, validationError(fmt.Sprintf("content exceeds %d characters", message.MaxContentLen))
	}

	author := strings.TrimSpace(in.Author)
	if len([]rune(author)) > message.MaxAuthorLen {
		return nil, validationError(fmt.Sprintf("author exceeds %d characters", message.MaxAuthorLen))
	}
	if in.IsAnonymous || author == "" {
		author = message.AnonymousAuthor
	}

	if !s.verifier.Verify(ctx, in.CaptchaToken) {
		return nil, ErrCaptcha
	}

	msg := &message.Message{
		Content:     content,
		Author:      author,
		IsAnonymous: in.IsAnonymous || strings.TrimSpace(in.Author) == "",
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
