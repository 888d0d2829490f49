// Package service contains the business logic for tzplanner.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. The pure session rules live in domain.Registry; services apply them
// to stored state.
package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pkordes/tzplanner/internal/domain"
	"github.com/pkordes/tzplanner/internal/repo"
)

// SessionService implements the Session Registry operations over a
// repo.SessionRepo. Add and Delete read the current list and then write, so
// they are serialised to keep IDs equal to count+1 at creation.
type SessionService struct {
	mu            sync.Mutex
	repo          repo.SessionRepo
	baseTimezones []string
}

// NewSessionService constructs a SessionService. baseTimezones is the fixed
// list a session's base timezone must come from.
func NewSessionService(r repo.SessionRepo, baseTimezones []string) *SessionService {
	return &SessionService{repo: r, baseTimezones: slices.Clone(baseTimezones)}
}

// Add validates d, builds the session and stores it after the existing ones.
// Returns domain.ErrValidation if no dates are selected, the mode is unknown
// or the base timezone is not one of the selectable ones.
func (s *SessionService) Add(ctx context.Context, d domain.Draft) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Add: %w", err)
	}

	_, session, err := domain.NewRegistry(existing).Add(d)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Add: %w", err)
	}
	if !slices.Contains(s.baseTimezones, session.BaseTimezone) {
		return domain.Session{}, fmt.Errorf("service.SessionService.Add: %w: base timezone %q is not supported",
			domain.ErrValidation, session.BaseTimezone)
	}

	created, err := s.repo.Append(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.SessionService.Add: %w", err)
	}
	return created, nil
}

// Delete removes the session at the 0-based position in the current list.
// An out-of-range position is a no-op. Remaining IDs are not renumbered.
func (s *SessionService) Delete(ctx context.Context, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("service.SessionService.Delete: %w", err)
	}
	if position < 0 || position >= len(sessions) {
		return nil
	}
	if err := s.repo.Delete(ctx, sessions[position].Key); err != nil {
		return fmt.Errorf("service.SessionService.Delete: %w", err)
	}
	return nil
}

// List returns every session in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SessionService.List: %w", err)
	}
	if sessions == nil {
		return []domain.Session{}, nil
	}
	return sessions, nil
}
