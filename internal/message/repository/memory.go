package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/center-believer/backend/internal/message"
)

// MemoryRepo is an in-memory Repository used by tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows []message.Message
	seq  int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Latest(ctx context.Context, limit int) ([]message.Message, error) {
	return m.collect(func(message.Message) bool { return true }, limit), nil
}

func (m *MemoryRepo) Before(ctx context.Context, t time.Time, limit int) ([]message.Message, error) {
	return m.collect(func(msg message.Message) bool { return msg.CreatedAt.Before(t) }, limit), nil
}

func (m *MemoryRepo) collect(keep func(message.Message) bool, limit int) []message.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []message.Message{}
	for _, msg := range m.rows {
		if keep(msg) {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *MemoryRepo) Create(ctx context.Context, msg *message.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	msg.ID = fmt.Sprintf("mem-%d", m.seq)
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	m.rows = append(m.rows, *msg)
	return nil
}
