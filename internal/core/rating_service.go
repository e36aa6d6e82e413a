package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecopontos-backend-go/internal/db"
	"ecopontos-backend-go/internal/models"
)

type ratingService struct {
	points db.CollectionPointRepository
	events EventRecorder
	now    func() time.Time
}

// NewRatingService creates a RatingService.
func NewRatingService(points db.CollectionPointRepository, events EventRecorder) RatingService {
	return &ratingService{points: points, events: eventsOrNop(events), now: time.Now}
}

func (s *ratingService) AddRating(ctx context.Context, pointID string, req models.CreateRatingRequest) (string, error) {
	rating := &models.Rating{
		UserID:    req.UserID,
		Comment:   req.Comment,
		Timestamp: models.FormatTimestamp(s.now()),
	}
	if req.Score != nil {
		rating.Score = *req.Score
	}
	id, err := s.points.AddRating(ctx, pointID, rating)
	if err != nil {
		return "", translate(err, ErrCollectionPointNotFound, "collection point '%s'", pointID)
	}
	s.events.RecordEvent(EventRatingAdded)
	return id, nil
}

func (s *ratingService) ListRatings(ctx context.Context, pointID string) (models.Record, error) {
	ratings, err := s.points.ListRatings(ctx, pointID)
	if err != nil {
		return nil, translate(err, ErrCollectionPointNotFound, "collection point '%s'", pointID)
	}
	if len(ratings) > 0 {
		return ratings, nil
	}
	if _, err := s.points.GetByID(ctx, pointID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: collection point '%s'", ErrCollectionPointNotFound, pointID)
		}
		return nil, fmt.Errorf("failed to check collection point '%s': %w", pointID, err)
	}
	return nil, fmt.Errorf("%w: collection point '%s'", ErrNoRatings, pointID)
}
