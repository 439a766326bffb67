package repository

import (
	"context"
	"time"

	"github.com/center-believer/backend/internal/message"
)

// Repository persists guestbook messages.
type Repository interface {
	// Latest returns up to limit messages, newest first.
	Latest(ctx context.Context, limit int) ([]message.Message, error)
	// Before returns up to limit messages created strictly before the given
	// instant, newest first.
	Before(ctx context.Context, t time.Time, limit int) ([]message.Message, error)
	Create(ctx context.Context, m *message.Message) error
}
