package models

// Sample represents a single frequency-response measurement
type Sample struct {
	Frequency float64 `json:"frequency" minimum:"1" doc:"Frequency in Hz, at least 1"`
	Gain      float64 `json:"gain" doc:"Gain in dB"`
	Phase     float64 `json:"phase" doc:"Phase in degrees, carried but not plotted"`
}

// Series is a named, ordered sequence of samples.
// Samples are plotted in the order given.
type Series struct {
	ID      string   `json:"id,omitempty" doc:"Series unique identifier"`
	Name    string   `json:"name" minLength:"1" maxLength:"64" doc:"Series name, used as legend label"`
	Samples []Sample `json:"samples" minItems:"1" doc:"Frequency response samples"`
}

// Validate checks the series invariants.
func (s *Series) Validate() error {
	if s.Name == "" {
		return ErrUnnamedSeries
	}
	if len(s.Samples) == 0 {
		return &SeriesError{Series: s.Name, Err: ErrEmptySeries}
	}
	for i, p := range s.Samples {
		if !(p.Frequency > 0) {
			return &SeriesError{Series: s.Name, Index: i, Err: ErrNonPositiveFrequency}
		}
		if p.Frequency < 1 {
			return &SeriesError{Series: s.Name, Index: i, Err: ErrOutOfLogDomain}
		}
	}
	return nil
}
