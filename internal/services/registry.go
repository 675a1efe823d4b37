package services

import (
	"context"
	"fmt"
	"strings"

	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/storage"
)

// RegistryService manages the train catalog. Registration happens at
// startup from the seed file, over HTTP, or through the catalog feed; trains
// are never removed.
type RegistryService struct {
	store storage.Store
	log   *logger.Logger
}

func NewRegistryService(store storage.Store, log *logger.Logger) *RegistryService {
	return &RegistryService{
		store: store,
		log:   log,
	}
}

func (s *RegistryService) RegisterTrain(ctx context.Context, req *models.TrainRequest) (*models.Train, error) {
	if strings.TrimSpace(req.Number) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if req.Capacity <= 0 || req.Fare <= 0 {
		return nil, ErrInvalidInput
	}

	// No duplicate check: the registry resolves a number to its first match,
	// so re-registering a number only shadows the newcomer.
	train := models.NewTrain(req.Number, req.Name, req.Source, req.Destination, req.Capacity, req.Fare)
	if err := s.store.AddTrain(train); err != nil {
		return nil, fmt.Errorf("failed to add train: %w", err)
	}

	s.log.LogRegistry("ADDED", train.Number, fmt.Sprintf("%s, %s -> %s, %d seats at %s%s",
		train.Name, train.Source, train.Destination, train.Capacity, models.CurrencyTag, models.FormatFare(train.Fare)))

	return train, nil
}

func (s *RegistryService) GetTrain(ctx context.Context, number string) (*models.Train, error) {
	if strings.TrimSpace(number) == "" {
		return nil, ErrInvalidInput
	}

	train, err := s.store.GetTrain(number)
	if err != nil {
		s.log.LogRegistry("NOT_FOUND", number, "Train not found")
		return nil, ErrTrainNotFound
	}

	return train, nil
}

func (s *RegistryService) ListTrains(ctx context.Context) ([]*models.Train, error) {
	return s.store.ListTrains()
}

// HandleTrainEvent registers a train announced on the catalog feed.
func (s *RegistryService) HandleTrainEvent(event *models.TrainEvent) error {
	s.log.LogKafka("TRAIN_RECEIVED", "train.created", fmt.Sprintf("Catalog feed announced train %s", event.Number))

	_, err := s.RegisterTrain(context.Background(), &models.TrainRequest{
		Number:      event.Number,
		Name:        event.Name,
		Source:      event.Source,
		Destination: event.Destination,
		Capacity:    event.Capacity,
		Fare:        event.Fare,
	})
	if err != nil {
		return fmt.Errorf("failed to register train %s from feed: %w", event.Number, err)
	}

	return nil
}
