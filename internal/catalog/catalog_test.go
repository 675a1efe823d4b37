package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-ticketing/internal/logger"
	"train-ticketing/internal/services"
	"train-ticketing/internal/storage"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trains.json")
	seed := `[
		{"number": "007", "name": "Night Mail", "source": "Kisumu", "destination": "Nairobi", "capacity": 30, "fare": 900}
	]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "007", entries[0].Number)
	assert.Equal(t, "Night Mail", entries[0].Name)
	assert.Equal(t, 30, entries[0].Capacity)
	assert.Equal(t, 900.0, entries[0].Fare)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trains.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trains.json")
	seed := `[
		{"number": "010", "name": "Coast Line", "source": "Mombasa", "destination": "Voi", "capacity": 20, "fare": 600}
	]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	store := storage.NewInMemoryStore()
	registry := services.NewRegistryService(store, logger.NewLogger())

	require.NoError(t, Seed(context.Background(), path, registry, logger.NewLogger()))

	train, err := store.GetTrain("010")
	require.NoError(t, err)
	assert.Equal(t, "Coast Line", train.Name)
	assert.Len(t, train.FreeSeats, 20)
}

func TestSeedFallsBackToDefaultCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	store := storage.NewInMemoryStore()
	registry := services.NewRegistryService(store, logger.NewLogger())

	require.NoError(t, Seed(context.Background(), path, registry, logger.NewLogger()))

	trains, err := store.ListTrains()
	require.NoError(t, err)
	require.Len(t, trains, 2)
	assert.Equal(t, "Express 101", trains[0].Name)
	assert.Equal(t, "SuperFast 202", trains[1].Name)
}

func TestSeedFailsOnInvalidEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trains.json")
	seed := `[{"number": "", "name": "", "source": "", "destination": "", "capacity": 0, "fare": 0}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	store := storage.NewInMemoryStore()
	registry := services.NewRegistryService(store, logger.NewLogger())

	assert.Error(t, Seed(context.Background(), path, registry, logger.NewLogger()))
}
