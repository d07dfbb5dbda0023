package services

import (
	"context"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes the local record of published releases.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns the most recent releases, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Release, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.List(ctx, limit)
}

// Get retrieves one release by tag.
func (s *HistoryService) Get(ctx context.Context, tag string) (*domain.Release, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, tag)
}
