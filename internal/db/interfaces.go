package db

import (
	"context"

	"ecopontos-backend-go/internal/models"
)

// CollectionPointRepository defines the storage operations for collection points and
// their embedded ratings. Writes take typed models; reads return the stored nodes as is.
type CollectionPointRepository interface {
	// List returns the collection node keyed by point id.
	List(ctx context.Context) (models.Record, error)
	GetByID(ctx context.Context, pointID string) (models.Record, error)
	Create(ctx context.Context, point *models.CollectionPoint) (string, error) // Returns the push key
	CreateWithID(ctx context.Context, pointID string, point *models.CollectionPoint) error
	// Update overlays fields on the stored node in one conditional write.
	Update(ctx context.Context, pointID string, fields map[string]interface{}) (models.Record, error)
	// Delete removes the point together with its ratings.
	Delete(ctx context.Context, pointID string) error
	AddRating(ctx context.Context, pointID string, rating *models.Rating) (string, error)
	ListRatings(ctx context.Context, pointID string) (models.Record, error)
}

// SuggestionRepository defines the storage operations for suggestions.
type SuggestionRepository interface {
	List(ctx context.Context) (models.Record, error)
	GetByID(ctx context.Context, suggestionID string) (models.Record, error)
	Create(ctx context.Context, suggestion *models.Suggestion) (string, error) // Returns a UUID
	// Resolve applies mutate to the stored suggestion in one conditional write. An error
	// from mutate aborts the write and is returned as is. Only the moderation fields are
	// written back; everything else in the node is kept.
	Resolve(ctx context.Context, suggestionID string, mutate func(*models.Suggestion) error) (*models.Suggestion, error)
}

// UserRepository defines the storage operations for user profiles.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.UserProfile, error)
	Create(ctx context.Context, userID string, profile *models.UserProfile) error
}
