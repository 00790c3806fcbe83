package vocabulary

import (
	"sync"

	"github.com/google/uuid"
)

// Registry hands out one Service per user so the session layer and the
// HTTP handlers operate on the same in-memory list.
type Registry struct {
	newService func() *Service

	mu       sync.Mutex
	services map[uuid.UUID]*Service
}

// NewRegistry creates a Registry that builds services with newService.
func NewRegistry(newService func() *Service) *Registry {
	return &Registry{
		newService: newService,
		services:   make(map[uuid.UUID]*Service),
	}
}

// ForUser returns the user's Service, creating it on first use.
func (r *Registry) ForUser(userID uuid.UUID) *Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[userID]
	if !ok {
		s = r.newService()
		r.services[userID] = s
	}
	return s
}

// Remove discards the user's Service. The next ForUser call starts fresh.
func (r *Registry) Remove(userID uuid.UUID) {
	r.mu.Lock()
	delete(r.services, userID)
	r.mu.Unlock()
}
