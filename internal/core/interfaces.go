package core

import (
	"context"

	"ecopontos-backend-go/internal/models"
)

// CollectionPointService defines the operations on collection points. Reads return the
// stored records unchanged.
type CollectionPointService interface {
	List(ctx context.Context) (models.Record, error)
	GetByID(ctx context.Context, pointID string) (models.Record, error)
	Create(ctx context.Context, req models.CreateCollectionPointRequest) (string, error)
	Update(ctx context.Context, pointID string, req models.UpdateCollectionPointRequest) (models.Record, error)
	Delete(ctx context.Context, pointID string) error
}

// RatingService defines the operations on the ratings of a collection point.
type RatingService interface {
	AddRating(ctx context.Context, pointID string, req models.CreateRatingRequest) (string, error)
	// ListRatings fails with ErrNoRatings when the point exists but has no ratings.
	ListRatings(ctx context.Context, pointID string) (models.Record, error)
}

// SuggestionService defines submission and moderation of suggestions.
type SuggestionService interface {
	Create(ctx context.Context, req models.CreateSuggestionRequest) (string, error)
	List(ctx context.Context) (models.Record, error)
	// Approve turns a pending suggestion into a collection point and returns its id.
	Approve(ctx context.Context, suggestionID string) (string, error)
	Reject(ctx context.Context, suggestionID string) error
}

// UserService defines registration and profile lookup.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserOut, error)
	// Me returns the profile of uid. tokenEmail, when set, takes precedence over the
	// stored email.
	Me(ctx context.Context, uid, tokenEmail string) (*models.UserOut, error)
}

// DiagnosticsService exposes the raw store contents.
type DiagnosticsService interface {
	Dump(ctx context.Context) (map[string]interface{}, error)
}

// Domain events counted by an EventRecorder.
const (
	EventCollectionPointCreated = "collection_point_created"
	EventCollectionPointDeleted = "collection_point_deleted"
	EventRatingAdded            = "rating_added"
	EventSuggestionCreated      = "suggestion_created"
	EventSuggestionApproved     = "suggestion_approved"
	EventSuggestionRejected     = "suggestion_rejected"
	EventUserRegistered         = "user_registered"
)

// EventRecorder counts domain events.
type EventRecorder interface {
	RecordEvent(event string)
}

type nopEvents struct{}

func (nopEvents) RecordEvent(string) {}

func eventsOrNop(events EventRecorder) EventRecorder {
	if events == nil {
		return nopEvents{}
	}
	return events
}
