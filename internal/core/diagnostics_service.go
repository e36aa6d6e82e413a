package core

import (
	"context"
	"fmt"

	"ecopontos-backend-go/internal/db"
)

type diagnosticsService struct {
	store db.Store
}

// NewDiagnosticsService creates a DiagnosticsService reading from store.
func NewDiagnosticsService(store db.Store) DiagnosticsService {
	return &diagnosticsService{store: store}
}

// Dump returns the whole tree; an empty store yields an empty map.
func (s *diagnosticsService) Dump(ctx context.Context) (map[string]interface{}, error) {
	contents := make(map[string]interface{})
	if _, err := s.store.Get(ctx, "", &contents); err != nil {
		return nil, fmt.Errorf("failed to read store root: %w", err)
	}
	return contents, nil
}
