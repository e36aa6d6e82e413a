package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ecopontos-backend-go/internal/db"
	"ecopontos-backend-go/internal/models"
)

type collectionPointService struct {
	repo   db.CollectionPointRepository
	events EventRecorder
	logger *zap.Logger
	now    func() time.Time
}

// NewCollectionPointService creates a CollectionPointService.
func NewCollectionPointService(repo db.CollectionPointRepository, events EventRecorder, logger *zap.Logger) CollectionPointService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &collectionPointService{
		repo:   repo,
		events: eventsOrNop(events),
		logger: logger.Named("collection_points"),
		now:    time.Now,
	}
}

func (s *collectionPointService) List(ctx context.Context) (models.Record, error) {
	points, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate(err, ErrCollectionPointNotFound, "failed to list collection points")
	}
	return points, nil
}

func (s *collectionPointService) GetByID(ctx context.Context, pointID string) (models.Record, error) {
	point, err := s.repo.GetByID(ctx, pointID)
	if err != nil {
		return nil, translate(err, ErrCollectionPointNotFound, "collection point '%s'", pointID)
	}
	return point, nil
}

// Create stamps criadoEm and defaults the status to active.
func (s *collectionPointService) Create(ctx context.Context, req models.CreateCollectionPointRequest) (string, error) {
	point := &models.CollectionPoint{
		Name:       req.Name,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		CreatedBy:  req.CreatedBy,
		CreatedAt:  models.FormatTimestamp(s.now()),
		Status:     req.Status,
	}
	if req.Latitude != nil {
		point.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		point.Longitude = *req.Longitude
	}
	if point.Status == "" {
		point.Status = models.StatusActive
	}

	id, err := s.repo.Create(ctx, point)
	if err != nil {
		return "", translate(err, ErrCollectionPointNotFound, "failed to create collection point")
	}
	s.events.RecordEvent(EventCollectionPointCreated)
	s.logger.Info("Collection point created", zap.String("id", id))
	return id, nil
}

func (s *collectionPointService) Update(ctx context.Context, pointID string, req models.UpdateCollectionPointRequest) (models.Record, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	point, err := s.repo.Update(ctx, pointID, fields)
	if err != nil {
		return nil, translate(err, ErrCollectionPointNotFound, "collection point '%s'", pointID)
	}
	return point, nil
}

func (s *collectionPointService) Delete(ctx context.Context, pointID string) error {
	if err := s.repo.Delete(ctx, pointID); err != nil {
		return translate(err, ErrCollectionPointNotFound, "collection point '%s'", pointID)
	}
	s.events.RecordEvent(EventCollectionPointDeleted)
	s.logger.Info("Collection point deleted", zap.String("id", pointID))
	return nil
}
