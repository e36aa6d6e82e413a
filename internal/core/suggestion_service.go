package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ecopontos-backend-go/internal/db"
	"ecopontos-backend-go/internal/models"
)

type suggestionService struct {
	suggestions db.SuggestionRepository
	points      db.CollectionPointRepository
	events      EventRecorder
	logger      *zap.Logger
	now         func() time.Time
	newPointID  func() string
}

// NewSuggestionService creates a SuggestionService. Approval writes to points.
func NewSuggestionService(suggestions db.SuggestionRepository, points db.CollectionPointRepository, events EventRecorder, logger *zap.Logger) SuggestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &suggestionService{
		suggestions: suggestions,
		points:      points,
		events:      eventsOrNop(events),
		logger:      logger.Named("suggestions"),
		now:         time.Now,
		newPointID:  db.NewPushKey,
	}
}

func (s *suggestionService) Create(ctx context.Context, req models.CreateSuggestionRequest) (string, error) {
	suggestion := &models.Suggestion{
		UserID:     req.UserID,
		Name:       req.Name,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		Timestamp:  models.FormatTimestamp(s.now()),
		Status:     models.SuggestionPending,
	}
	if req.Latitude != nil {
		suggestion.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		suggestion.Longitude = *req.Longitude
	}
	id, err := s.suggestions.Create(ctx, suggestion)
	if err != nil {
		return "", translate(err, ErrSuggestionNotFound, "failed to create suggestion")
	}
	s.events.RecordEvent(EventSuggestionCreated)
	return id, nil
}

func (s *suggestionService) List(ctx context.Context) (models.Record, error) {
	suggestions, err := s.suggestions.List(ctx)
	if err != nil {
		return nil, translate(err, ErrSuggestionNotFound, "failed to list suggestions")
	}
	return suggestions, nil
}

// Approve claims the suggestion first, recording the id of the point it will spawn, and
// then writes the point. Only one caller can win the claim, so a suggestion never
// produces two points. If the point write fails the claim is released again.
func (s *suggestionService) Approve(ctx context.Context, suggestionID string) (string, error) {
	pointID := s.newPointID()
	resolvedAt := models.FormatTimestamp(s.now())

	claimed, err := s.suggestions.Resolve(ctx, suggestionID, func(sg *models.Suggestion) error {
		if sg.IsTerminal() {
			return fmt.Errorf("%w: status is '%s'", ErrSuggestionAlreadyResolved, sg.Status)
		}
		sg.Status = models.SuggestionApproved
		sg.CollectionPointID = pointID
		sg.ResolvedAt = resolvedAt
		return nil
	})
	if err != nil {
		return "", translate(err, ErrSuggestionNotFound, "suggestion '%s'", suggestionID)
	}

	point := &models.CollectionPoint{
		Name:       claimed.Name,
		Address:    claimed.Address,
		PostalCode: claimed.PostalCode,
		Latitude:   claimed.Latitude,
		Longitude:  claimed.Longitude,
		CreatedBy:  claimed.UserID,
		CreatedAt:  resolvedAt,
		Status:     models.StatusActive,
	}
	if err := s.points.CreateWithID(ctx, pointID, point); err != nil {
		s.releaseClaim(ctx, suggestionID, pointID)
		return "", fmt.Errorf("failed to create collection point for suggestion '%s': %w", suggestionID, err)
	}

	s.events.RecordEvent(EventSuggestionApproved)
	s.logger.Info("Suggestion approved",
		zap.String("suggestion_id", suggestionID),
		zap.String("collection_point_id", pointID))
	return pointID, nil
}

// releaseClaim puts a suggestion claimed by Approve back to pending. It runs even when
// the request context is already done.
func (s *suggestionService) releaseClaim(ctx context.Context, suggestionID, pointID string) {
	_, err := s.suggestions.Resolve(context.WithoutCancel(ctx), suggestionID, func(sg *models.Suggestion) error {
		if sg.Status == models.SuggestionApproved && sg.CollectionPointID == pointID {
			sg.Status = models.SuggestionPending
			sg.CollectionPointID = ""
			sg.ResolvedAt = ""
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to release suggestion claim after collection point write failed",
			zap.String("suggestion_id", suggestionID),
			zap.String("collection_point_id", pointID),
			zap.Error(err))
	}
}

func (s *suggestionService) Reject(ctx context.Context, suggestionID string) error {
	resolvedAt := models.FormatTimestamp(s.now())
	_, err := s.suggestions.Resolve(ctx, suggestionID, func(sg *models.Suggestion) error {
		if sg.IsTerminal() {
			return fmt.Errorf("%w: status is '%s'", ErrSuggestionAlreadyResolved, sg.Status)
		}
		sg.Status = models.SuggestionRejected
		sg.ResolvedAt = resolvedAt
		return nil
	})
	if err != nil {
		return translate(err, ErrSuggestionNotFound, "suggestion '%s'", suggestionID)
	}
	s.events.RecordEvent(EventSuggestionRejected)
	s.logger.Info("Suggestion rejected", zap.String("suggestion_id", suggestionID))
	return nil
}
