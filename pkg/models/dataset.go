package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnnamedSeries        = errors.New("series name is empty")
	ErrDuplicateSeries      = errors.New("duplicate series name")
	ErrEmptySeries          = errors.New("series has no samples")
	ErrNonPositiveFrequency = errors.New("frequency must be positive")
	ErrSeriesNotFound       = errors.New("series not found")
	ErrOutOfLogDomain       = errors.New("frequency is outside the logarithmic axis domain")
)

// SeriesError ties a validation failure to the series (and sample) it came from.
type SeriesError struct {
	Series string
	Index  int
	Err    error
}

func (e *SeriesError) Error() string {
	if errors.Is(e.Err, ErrEmptySeries) || errors.Is(e.Err, ErrDuplicateSeries) {
		return fmt.Sprintf("series %q: %v", e.Series, e.Err)
	}
	return fmt.Sprintf("series %q sample %d: %v", e.Series, e.Index, e.Err)
}

func (e *SeriesError) Unwrap() error { return e.Err }

// Dataset is an ordered collection of series, read-only once built.
type Dataset struct {
	series []*Series
	byName map[string]*Series
}

// NewDataset builds a dataset and validates every series in it.
func NewDataset(series ...*Series) (*Dataset, error) {
	d := &Dataset{byName: make(map[string]*Series, len(series))}
	for _, s := range series {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := d.byName[s.Name]; ok {
			return nil, &SeriesError{Series: s.Name, Err: ErrDuplicateSeries}
		}
		d.byName[s.Name] = s
		d.series = append(d.series, s)
	}
	return d, nil
}

// Lookup returns the series with the given name.
func (d *Dataset) Lookup(name string) (*Series, error) {
	s, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
	}
	return s, nil
}

// Names returns series names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.series))
	for i, s := range d.series {
		names[i] = s.Name
	}
	return names
}

// Series returns the series in dataset order.
func (d *Dataset) Series() []*Series {
	out := make([]*Series, len(d.series))
	copy(out, d.series)
	return out
}

func (d *Dataset) Len() int { return len(d.series) }
