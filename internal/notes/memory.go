package notes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory notes store useful for tests.
// Title equality is case-insensitive, like the Postgres repo.
type MemoryStore struct {
	mu    sync.Mutex
	notes map[string]Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: map[string]Note{}}
}

func (s *MemoryStore) List(_ context.Context) ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	return n, nil
}

func (s *MemoryStore) FindByTitle(_ context.Context, title string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if strings.EqualFold(n.Title, title) {
			return n, nil
		}
	}
	return Note{}, ErrNotFound
}

func (s *MemoryStore) Create(_ context.Context, n Note) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.notes {
		if strings.EqualFold(existing.Title, n.Title) {
			return Note{}, ErrDuplicateTitle
		}
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	s.notes[n.ID] = n
	return n, nil
}

func (s *MemoryStore) Update(_ context.Context, n Note) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.notes[n.ID]
	if !ok {
		return Note{}, ErrNotFound
	}
	for id, other := range s.notes {
		if id != n.ID && strings.EqualFold(other.Title, n.Title) {
			return Note{}, ErrDuplicateTitle
		}
	}
	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = time.Now().UTC()
	s.notes[n.ID] = n
	return n, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	delete(s.notes, id)
	return n, nil
}

func (s *MemoryStore) CountByUser(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notes {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}
