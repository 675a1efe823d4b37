// Package catalog loads the train seed file handed to the service at
// startup. The registry itself never reads files; this is the external
// collaborator that pre-populates it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"train-ticketing/internal/logger"
	"train-ticketing/internal/models"
	"train-ticketing/internal/services"
)

// Load reads a JSON array of train entries from path.
func Load(path string) ([]models.TrainRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []models.TrainRequest
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return entries, nil
}

// Default is the sample catalog used when no seed file is present.
func Default() []models.TrainRequest {
	return []models.TrainRequest{
		{Number: "001", Name: "Express 101", Source: "Nairobi", Destination: "Mombasa", Capacity: 50, Fare: 1500},
		{Number: "002", Name: "SuperFast 202", Source: "Mombasa", Destination: "Nakuru", Capacity: 50, Fare: 1200},
	}
}

// Seed registers every catalog entry, falling back to the default catalog
// when the seed file does not exist.
func Seed(ctx context.Context, path string, registry *services.RegistryService, log *logger.Logger) error {
	entries, err := Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		log.Warn("CATALOG", fmt.Sprintf("Seed file %s not found, using default catalog", path))
		entries = Default()
	}

	for i := range entries {
		if _, err := registry.RegisterTrain(ctx, &entries[i]); err != nil {
			return fmt.Errorf("failed to seed train %s: %w", entries[i].Number, err)
		}
	}

	log.LogProcess("CATALOG", fmt.Sprintf("Seeded %d trains into the registry", len(entries)))
	return nil
}
