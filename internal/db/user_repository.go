package db

import (
	"context"
	"fmt"

	"ecopontos-backend-go/internal/models"
)

// storeUserRepository implements UserRepository. Profiles are keyed by the identity
// provider's user id.
type storeUserRepository struct {
	store Store
}

// NewUserRepository creates a UserRepository backed by store.
func NewUserRepository(store Store) UserRepository {
	return &storeUserRepository{store: store}
}

// GetByID retrieves the profile stored at users/<userID>.
func (r *storeUserRepository) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	if err := ValidateKey(userID); err != nil {
		return nil, err
	}
	var profile models.UserProfile
	found, err := r.store.Get(ctx, EntityPath(UsersCollection, userID), &profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}
	if !found {
		return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
	}
	return &profile, nil
}

// Create writes the profile for userID.
func (r *storeUserRepository) Create(ctx context.Context, userID string, profile *models.UserProfile) error {
	if err := ValidateKey(userID); err != nil {
		return err
	}
	if err := r.store.Set(ctx, EntityPath(UsersCollection, userID), profile); err != nil {
		return fmt.Errorf("failed to create user with ID '%s': %w", userID, err)
	}
	return nil
}
