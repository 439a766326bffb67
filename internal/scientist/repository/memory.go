package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/center-believer/backend/internal/scientist"
)

// MemoryRepo is an in-memory repository used by unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*scientist.Scientist
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*scientist.Scientist)}
}

func (m *MemoryRepo) List(ctx context.Context) ([]*scientist.Scientist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*scientist.Scientist, 0, len(m.store))
	for _, s := range m.store {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*scientist.Scientist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.store[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Create(ctx context.Context, s *scientist.Scientist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID().Hex()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, fields scientist.UpdateFields) (*scientist.Scientist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if fields.Name != nil {
		s.Name = *fields.Name
	}
	if fields.Title != nil {
		s.Title = *fields.Title
	}
	if fields.Description != nil {
		s.Description = *fields.Description
	}
	if fields.Achievements != nil {
		s.Achievements = fields.Achievements
	}
	if fields.BirthYear != nil {
		s.BirthYear = fields.BirthYear
	}
	if fields.DeathYear != nil {
		s.DeathYear = fields.DeathYear
	}
	if fields.Subject != nil {
		s.Subject = *fields.Subject
	}
	if fields.Color != nil {
		s.Color = *fields.Color
	}
	if fields.Image != nil {
		s.Image = *fields.Image
	}
	s.UpdatedAt = time.Now().UTC()
	cp := *s
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
