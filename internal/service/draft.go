package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkordes/tzplanner/internal/domain"
)

// sessionAdder is the part of SessionService the draft workflow needs.
type sessionAdder interface {
	Add(ctx context.Context, d domain.Draft) (domain.Session, error)
}

// DraftService holds the workspace's in-progress session input, the server
// side of the form a browser edits before pressing "add".
type DraftService struct {
	mu        sync.Mutex
	draft     domain.Draft
	defaultTZ string
	sessions  sessionAdder
}

// NewDraftService returns a DraftService whose draft starts, and is reset to,
// the defaults with defaultTZ as base timezone.
func NewDraftService(sessions sessionAdder, defaultTZ string) *DraftService {
	return &DraftService{
		draft:     domain.NewDraft(defaultTZ),
		defaultTZ: defaultTZ,
		sessions:  sessions,
	}
}

// Get returns the current draft.
func (s *DraftService) Get(_ context.Context) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Replace overwrites the draft. The date set is normalised to ascending,
// duplicate-free order.
func (s *DraftService) Replace(_ context.Context, d domain.Draft) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d.WithDates(d.Dates...)
	return s.draft
}

// ToggleDate selects or deselects one calendar date.
func (s *DraftService) ToggleDate(_ context.Context, date time.Time) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = s.draft.ToggleDate(date)
	return s.draft
}

// Commit adds the draft as a new session and resets the draft to defaults.
// On error the draft is kept so the user can correct it.
func (s *DraftService) Commit(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.sessions.Add(ctx, s.draft)
	if err != nil {
		return domain.Session{}, err
	}
	s.draft = domain.NewDraft(s.defaultTZ)
	return created, nil
}
