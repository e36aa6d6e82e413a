package db

import (
	"context"
	"fmt"

	"ecopontos-backend-go/internal/models"
)

type storeSuggestionRepository struct {
	store Store
}

// NewSuggestionRepository creates a SuggestionRepository backed by store.
func NewSuggestionRepository(store Store) SuggestionRepository {
	return &storeSuggestionRepository{store: store}
}

func suggestionPath(suggestionID string) string {
	return EntityPath(SuggestionsCollection, suggestionID)
}

func (r *storeSuggestionRepository) List(ctx context.Context) (models.Record, error) {
	suggestions, err := readRecord(ctx, r.store, SuggestionsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	if suggestions == nil {
		suggestions = models.Record{}
	}
	return suggestions, nil
}

func (r *storeSuggestionRepository) GetByID(ctx context.Context, suggestionID string) (models.Record, error) {
	if err := ValidateKey(suggestionID); err != nil {
		return nil, err
	}
	suggestion, err := readRecord(ctx, r.store, suggestionPath(suggestionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion '%s': %w", suggestionID, err)
	}
	if suggestion == nil {
		return nil, fmt.Errorf("suggestion '%s': %w", suggestionID, ErrNotFound)
	}
	return suggestion, nil
}

// Create stores the suggestion under a random UUID.
func (r *storeSuggestionRepository) Create(ctx context.Context, suggestion *models.Suggestion) (string, error) {
	id := NewID()
	if err := r.store.Set(ctx, suggestionPath(id), suggestion); err != nil {
		return "", fmt.Errorf("failed to create suggestion: %w", err)
	}
	return id, nil
}

// Resolve runs mutate on the current suggestion inside a transaction and writes back the
// moderation fields it changed. Unknown stored fields are preserved.
func (r *storeSuggestionRepository) Resolve(ctx context.Context, suggestionID string, mutate func(*models.Suggestion) error) (*models.Suggestion, error) {
	if err := ValidateKey(suggestionID); err != nil {
		return nil, err
	}
	var resolved models.Suggestion
	err := r.store.Transaction(ctx, suggestionPath(suggestionID), func(current Node) (interface{}, error) {
		raw, err := decodeRaw(current)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, fmt.Errorf("suggestion '%s': %w", suggestionID, ErrNotFound)
		}
		resolved = models.SuggestionFromRecord(raw)
		if err := mutate(&resolved); err != nil {
			return nil, err
		}
		raw["status"] = resolved.Status
		setOrDelete(raw, "ecopontoId", resolved.CollectionPointID)
		setOrDelete(raw, "resolvidoEm", resolved.ResolvedAt)
		return raw, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve suggestion '%s': %w", suggestionID, err)
	}
	return &resolved, nil
}

func setOrDelete(raw map[string]interface{}, key, value string) {
	if value == "" {
		delete(raw, key)
		return
	}
	raw[key] = value
}
