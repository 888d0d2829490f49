package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/tzplanner/internal/domain"
	"github.com/pkordes/tzplanner/internal/repo"
)

// ExportService assembles the two export tables from the stored sessions
// and the static reference table.
type ExportService struct {
	sessions repo.SessionRepo
	refs     []domain.ReferenceEntry
}

// NewExportService constructs an ExportService. refs is used in the given
// order for every session.
func NewExportService(sessions repo.SessionRepo, refs []domain.ReferenceEntry) *ExportService {
	return &ExportService{sessions: sessions, refs: slices.Clone(refs)}
}

// Export returns the input echo and every session × reference conversion.
// Conversion failures wrap a *domain.ConversionError; match it with errors.As.
func (s *ExportService) Export(ctx context.Context) (domain.Export, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return domain.Export{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	out, err := BuildExport(sessions, s.refs)
	if err != nil {
		return domain.Export{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return out, nil
}
