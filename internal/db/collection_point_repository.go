package db

import (
	"context"
	"fmt"

	"ecopontos-backend-go/internal/models"
)

// storeCollectionPointRepository implements CollectionPointRepository on a Store.
type storeCollectionPointRepository struct {
	store Store
	keys  func() string
}

// NewCollectionPointRepository creates a CollectionPointRepository backed by store.
func NewCollectionPointRepository(store Store) CollectionPointRepository {
	return &storeCollectionPointRepository{store: store, keys: NewPushKey}
}

func pointPath(pointID string) string {
	return EntityPath(CollectionPointsCollection, pointID)
}

// List returns the collection node; an absent collection yields an empty record.
func (r *storeCollectionPointRepository) List(ctx context.Context) (models.Record, error) {
	points, err := readRecord(ctx, r.store, CollectionPointsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection points: %w", err)
	}
	if points == nil {
		points = models.Record{}
	}
	return points, nil
}

// GetByID retrieves one collection point as stored.
func (r *storeCollectionPointRepository) GetByID(ctx context.Context, pointID string) (models.Record, error) {
	if err := ValidateKey(pointID); err != nil {
		return nil, err
	}
	point, err := readRecord(ctx, r.store, pointPath(pointID))
	if err != nil {
		return nil, fmt.Errorf("failed to get collection point '%s': %w", pointID, err)
	}
	if point == nil {
		return nil, fmt.Errorf("collection point '%s': %w", pointID, ErrNotFound)
	}
	return point, nil
}

// Create stores the point under a store-generated push key.
func (r *storeCollectionPointRepository) Create(ctx context.Context, point *models.CollectionPoint) (string, error) {
	key, err := r.store.Push(ctx, CollectionPointsCollection, point)
	if err != nil {
		return "", fmt.Errorf("failed to create collection point: %w", err)
	}
	return key, nil
}

// CreateWithID stores the point under a caller-chosen id.
func (r *storeCollectionPointRepository) CreateWithID(ctx context.Context, pointID string, point *models.CollectionPoint) error {
	if err := ValidateKey(pointID); err != nil {
		return err
	}
	if err := r.store.Set(ctx, pointPath(pointID), point); err != nil {
		return fmt.Errorf("failed to create collection point '%s': %w", pointID, err)
	}
	return nil
}

// Update overlays fields on the stored node. Fields not listed, including any the
// schema does not know about, are written back unchanged.
func (r *storeCollectionPointRepository) Update(ctx context.Context, pointID string, fields map[string]interface{}) (models.Record, error) {
	if err := ValidateKey(pointID); err != nil {
		return nil, err
	}
	var updated models.Record
	err := r.store.Transaction(ctx, pointPath(pointID), func(current Node) (interface{}, error) {
		raw, err := decodeRaw(current)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, fmt.Errorf("collection point '%s': %w", pointID, ErrNotFound)
		}
		for k, v := range fields {
			raw[k] = v
		}
		updated = raw
		return raw, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update collection point '%s': %w", pointID, err)
	}
	return updated, nil
}

// Delete removes the node and its subtree, failing with ErrNotFound when it is absent.
func (r *storeCollectionPointRepository) Delete(ctx context.Context, pointID string) error {
	if err := ValidateKey(pointID); err != nil {
		return err
	}
	err := r.store.Transaction(ctx, pointPath(pointID), func(current Node) (interface{}, error) {
		var existing interface{}
		if err := current.Unmarshal(&existing); err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("collection point '%s': %w", pointID, ErrNotFound)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete collection point '%s': %w", pointID, err)
	}
	return nil
}

// AddRating appends rating under a fresh key. The parent check and the append are one
// conditional write, so a rating never lands under a point deleted in between.
func (r *storeCollectionPointRepository) AddRating(ctx context.Context, pointID string, rating *models.Rating) (string, error) {
	if err := ValidateKey(pointID); err != nil {
		return "", err
	}
	ratingID := r.keys()
	err := r.store.Transaction(ctx, pointPath(pointID), func(current Node) (interface{}, error) {
		raw, err := decodeRaw(current)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, fmt.Errorf("collection point '%s': %w", pointID, ErrNotFound)
		}
		ratings, _ := raw[RatingsSubcollection].(map[string]interface{})
		if ratings == nil {
			ratings = make(map[string]interface{})
		}
		ratings[ratingID] = rating
		raw[RatingsSubcollection] = ratings
		return raw, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to add rating to collection point '%s': %w", pointID, err)
	}
	return ratingID, nil
}

// ListRatings returns the ratings node of a point. An empty record means the point has
// none; callers check the point itself for existence.
func (r *storeCollectionPointRepository) ListRatings(ctx context.Context, pointID string) (models.Record, error) {
	if err := ValidateKey(pointID); err != nil {
		return nil, err
	}
	path := SubcollectionPath(CollectionPointsCollection, pointID, RatingsSubcollection)
	ratings, err := readRecord(ctx, r.store, path)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings of collection point '%s': %w", pointID, err)
	}
	if ratings == nil {
		ratings = models.Record{}
	}
	return ratings, nil
}
