// Package users keeps user profiles keyed by id. Upserts replace the whole profile.
package users

import (
	"sort"
	"sync"

	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// Store is a concurrency-safe profile registry.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]models.UserProfile
}

func NewStore() *Store {
	return &Store{profiles: make(map[string]models.UserProfile)}
}

// Upsert stores p, replacing any previous profile with the same id.
// An empty level defaults to beginner; nil lists are stored as empty.
func (s *Store) Upsert(p models.UserProfile) models.UserProfile {
	if p.Level == "" {
		p.Level = models.LevelBeginner
	}
	p = p.Clone()

	s.mu.Lock()
	s.profiles[p.ID] = p
	s.mu.Unlock()

	return p.Clone()
}

// Get returns the profile for id.
func (s *Store) Get(id string) (models.UserProfile, bool) {
	s.mu.RLock()
	p, ok := s.profiles[id]
	s.mu.RUnlock()
	if !ok {
		return models.UserProfile{}, false
	}
	return p.Clone(), true
}

// List returns all profiles ordered by id.
func (s *Store) List() []models.UserProfile {
	s.mu.RLock()
	out := make([]models.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
