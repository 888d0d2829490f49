package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/tzplanner/internal/domain"
)

// memorySessionRepo keeps sessions in process memory for the lifetime of
// the server. It wraps an immutable domain.Registry and swaps it under a mutex.
type memorySessionRepo struct {
	mu  sync.RWMutex
	reg domain.Registry
}

// NewMemorySessionRepo returns an empty in-memory SessionRepo.
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{}
}

func (r *memorySessionRepo) Append(_ context.Context, s domain.Session) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reg = domain.NewRegistry(append(r.reg.Sessions(), s))
	return s, nil
}

func (r *memorySessionRepo) List(_ context.Context) ([]domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reg.Sessions(), nil
}

func (r *memorySessionRepo) Delete(_ context.Context, key uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.reg.Sessions() {
		if s.Key == key {
			r.reg = r.reg.Delete(i)
			return nil
		}
	}
	return fmt.Errorf("repo.SessionRepo.Delete: %w", domain.ErrNotFound)
}
