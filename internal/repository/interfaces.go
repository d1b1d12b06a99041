package repository

import (
	"context"
	"fmt"

	"github.com/RMahshie/freqplot/pkg/models"
)

// SeriesRepository defines the interface for frequency series data operations
type SeriesRepository interface {
	Create(ctx context.Context, series *models.Series) error
	GetByName(ctx context.Context, name string) (*models.Series, error)
	List(ctx context.Context) ([]*models.Series, error)
	Delete(ctx context.Context, name string) error
}

// LoadDataset fetches the named series in order and validates them as a dataset.
func LoadDataset(ctx context.Context, repo SeriesRepository, names []string) (*models.Dataset, error) {
	series := make([]*models.Series, 0, len(names))
	for _, name := range names {
		s, err := repo.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load series %q: %w", name, err)
		}
		series = append(series, s)
	}
	return models.NewDataset(series...)
}
