package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(name string, freqs ...float64) *Series {
	s := &Series{Name: name}
	for _, f := range freqs {
		s.Samples = append(s.Samples, Sample{Frequency: f, Gain: f, Phase: f})
	}
	return s
}

func TestNewDataset(t *testing.T) {
	tests := []struct {
		name    string
		series  []*Series
		wantErr error
	}{
		{
			name:   "two valid series",
			series: []*Series{series("A", 1, 10, 10000), series("B", 1, 20, 10000)},
		},
		{
			name:    "empty series",
			series:  []*Series{series("A")},
			wantErr: ErrEmptySeries,
		},
		{
			name:    "zero frequency",
			series:  []*Series{series("A", 1, 0)},
			wantErr: ErrNonPositiveFrequency,
		},
		{
			name:    "negative frequency",
			series:  []*Series{series("A", -5)},
			wantErr: ErrNonPositiveFrequency,
		},
		{
			name:    "sub-hertz frequency",
			series:  []*Series{series("A", 1, 0.5)},
			wantErr: ErrOutOfLogDomain,
		},
		{
			name:    "duplicate names",
			series:  []*Series{series("A", 1), series("A", 2)},
			wantErr: ErrDuplicateSeries,
		},
		{
			name:    "unnamed series",
			series:  []*Series{series("", 1)},
			wantErr: ErrUnnamedSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDataset(tt.series...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.series), ds.Len())
		})
	}
}

func TestDatasetLookup(t *testing.T) {
	ds, err := NewDataset(series("B", 1, 20), series("A", 1, 10))
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, ds.Names())

	a, err := ds.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.Samples[1].Frequency)

	_, err = ds.Lookup("C")
	assert.True(t, errors.Is(err, ErrSeriesNotFound))
}

func TestSeriesErrorMessage(t *testing.T) {
	err := series("A", 1, 0).Validate()
	require.Error(t, err)
	assert.Equal(t, `series "A" sample 1: frequency must be positive`, err.Error())

	var serr *SeriesError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Index)
}
