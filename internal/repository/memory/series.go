package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/RMahshie/freqplot/internal/repository"
	"github.com/RMahshie/freqplot/pkg/models"
)

// SeriesRepository keeps series in process memory
type SeriesRepository struct {
	mu     sync.RWMutex
	series map[string]*models.Series
}

// NewSeriesRepository creates an empty in-memory repository
func NewSeriesRepository() *SeriesRepository {
	return &SeriesRepository{series: make(map[string]*models.Series)}
}

// NewStubRepository creates a repository holding the built-in sample dataset
func NewStubRepository() repository.SeriesRepository {
	r := NewSeriesRepository()
	for _, s := range StubDataset() {
		r.series[s.Name] = s
	}
	return r
}

// StubDataset returns the two sample series "A" and "B".
func StubDataset() []*models.Series {
	return []*models.Series{
		{
			ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("A")).String(),
			Name: "A",
			Samples: []models.Sample{
				{Frequency: 1, Gain: 1, Phase: 1},
				{Frequency: 10, Gain: 10, Phase: 10},
				{Frequency: 10_000, Gain: 100, Phase: 100},
			},
		},
		{
			ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("B")).String(),
			Name: "B",
			Samples: []models.Sample{
				{Frequency: 1, Gain: 1, Phase: 1},
				{Frequency: 20, Gain: 20, Phase: 20},
				{Frequency: 10_000, Gain: 100, Phase: 100},
			},
		},
	}
}

// Create stores a copy of the series
func (r *SeriesRepository) Create(ctx context.Context, series *models.Series) error {
	if err := series.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.series[series.Name]; ok {
		return &models.SeriesError{Series: series.Name, Err: models.ErrDuplicateSeries}
	}
	if series.ID == "" {
		series.ID = uuid.New().String()
	}
	r.series[series.Name] = clone(series)
	return nil
}

// GetByName returns a copy of the named series
func (r *SeriesRepository) GetByName(ctx context.Context, name string) (*models.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSeriesNotFound, name)
	}
	return clone(s), nil
}

// List returns every series ordered by name
func (r *SeriesRepository) List(ctx context.Context) ([]*models.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Series, 0, len(r.series))
	for _, s := range r.series {
		out = append(out, clone(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the named series
func (r *SeriesRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.series[name]; !ok {
		return fmt.Errorf("%w: %s", models.ErrSeriesNotFound, name)
	}
	delete(r.series, name)
	return nil
}

func clone(s *models.Series) *models.Series {
	c := *s
	c.Samples = append([]models.Sample(nil), s.Samples...)
	return &c
}
