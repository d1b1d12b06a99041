package chart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/freqplot/pkg/models"
)

func stubSeries() []*models.Series {
	return []*models.Series{
		{Name: "A", Samples: []models.Sample{{Frequency: 1, Gain: 1, Phase: 1}, {Frequency: 10, Gain: 10, Phase: 10}, {Frequency: 10_000, Gain: 100, Phase: 100}}},
		{Name: "B", Samples: []models.Sample{{Frequency: 1, Gain: 1, Phase: 1}, {Frequency: 20, Gain: 20, Phase: 20}, {Frequency: 10_000, Gain: 100, Phase: 100}}},
	}
}

func render(t *testing.T, series ...*models.Series) []byte {
	t.Helper()
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	for _, s := range series {
		require.NoError(t, c.AddSeries(s))
	}
	var buf bytes.Buffer
	n, err := c.Render(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

type svgDoc struct {
	root   string
	texts  []string
	styles []string
}

// parseSVG walks the document, failing the test if it is not well-formed XML.
func parseSVG(t *testing.T, doc []byte) svgDoc {
	t.Helper()
	var out svgDoc
	dec := xml.NewDecoder(bytes.NewReader(doc))
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			if out.root == "" {
				out.root = el.Name.Local
			}
			inText = el.Name.Local == "text"
			for _, a := range el.Attr {
				if a.Name.Local == "style" && el.Name.Local == "path" {
					out.styles = append(out.styles, a.Value)
				}
			}
		case xml.CharData:
			if inText {
				out.texts = append(out.texts, strings.TrimSpace(string(el)))
			}
		case xml.EndElement:
			inText = false
		}
	}
	return out
}

func styleValue(style, key string) string {
	for _, kv := range strings.Split(style, ";") {
		if v, ok := strings.CutPrefix(kv, key+":"); ok {
			return v
		}
	}
	return ""
}

func TestRenderStubDataset(t *testing.T) {
	doc := parseSVG(t, render(t, stubSeries()...))

	assert.Equal(t, "svg", doc.root)
	for _, want := range []string{"A", "B", "freq [Hz]", "gain [dB]", "FREQUENCY RESPONSE", "log-scale sample", "10000", "100"} {
		assert.Contains(t, doc.texts, want)
	}

	width := fmt.Sprintf("%.5g", pixels(3).Points())
	strokes := map[string]bool{}
	for _, s := range doc.styles {
		if styleValue(s, "stroke-width") == width {
			strokes[styleValue(s, "stroke")] = true
			assert.NotEmpty(t, styleValue(s, "stroke-opacity"), "series strokes are translucent")
		}
	}
	assert.Len(t, strokes, 2, "expected one stroke color per series")
}

func TestRenderIsDeterministic(t *testing.T) {
	first := render(t, stubSeries()...)
	second := render(t, stubSeries()...)
	assert.Equal(t, first, second)
}

func TestRenderWithoutSeries(t *testing.T) {
	doc := parseSVG(t, render(t))
	assert.Equal(t, "svg", doc.root)
	assert.NotContains(t, doc.texts, "A")
}

func TestAddSeries(t *testing.T) {
	tests := []struct {
		name    string
		series  *models.Series
		wantErr error
		wantXYs [][2]float64
	}{
		{
			name:    "decade endpoints",
			series:  &models.Series{Name: "edge", Samples: []models.Sample{{Frequency: 1}, {Frequency: 10_000, Gain: 100}}},
			wantXYs: [][2]float64{{1, 0}, {10_000, 100}},
		},
		{
			name:    "fractions truncate toward zero",
			series:  &models.Series{Name: "frac", Samples: []models.Sample{{Frequency: 19.9, Gain: 42.7}}},
			wantXYs: [][2]float64{{19, 42}},
		},
		{
			name:    "negative gain clamps to zero",
			series:  &models.Series{Name: "neg", Samples: []models.Sample{{Frequency: 5, Gain: -3}}},
			wantXYs: [][2]float64{{5, 0}},
		},
		{
			name:    "zero frequency",
			series:  &models.Series{Name: "zero", Samples: []models.Sample{{Frequency: 0}}},
			wantErr: models.ErrNonPositiveFrequency,
		},
		{
			name:    "sub-hertz frequency is outside the log domain",
			series:  &models.Series{Name: "sub", Samples: []models.Sample{{Frequency: 0.5}}},
			wantErr: models.ErrOutOfLogDomain,
		},
		{
			name:    "no samples",
			series:  &models.Series{Name: "empty"},
			wantErr: models.ErrEmptySeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(DefaultConfig())
			require.NoError(t, err)

			err = c.AddSeries(tt.series)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, c.Lines())
				return
			}
			require.NoError(t, err)
			require.Len(t, c.Lines(), 1)
			line := c.Lines()[0]
			require.Len(t, line.XYs, len(tt.wantXYs))
			for i, xy := range tt.wantXYs {
				assert.Equal(t, xy[0], line.XYs[i].X)
				assert.Equal(t, xy[1], line.XYs[i].Y)
			}
		})
	}
}

func TestAddSeriesColorsAndDuplicates(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	for _, s := range stubSeries() {
		require.NoError(t, c.AddSeries(s))
	}

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, Mix(Pick(0), 0.9), lines[0].Color)
	assert.Equal(t, Mix(Pick(1), 0.9), lines[1].Color)
	assert.NotEqual(t, lines[0].Color, lines[1].Color)

	err = c.AddSeries(stubSeries()[0])
	assert.ErrorIs(t, err, models.ErrDuplicateSeries)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"split below surface", func(c *Config) { c.SplitAt = c.Height + 1 }},
		{"non-positive log minimum", func(c *Config) { c.XMin = 0 }},
		{"inverted y range", func(c *Config) { c.YMin, c.YMax = 100, 0 }},
		{"zero line width", func(c *Config) { c.LineWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestRenderPropagatesWriteError(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, c.AddSeries(stubSeries()[0]))

	_, err = c.Render(failingWriter{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMix(t *testing.T) {
	assert.Equal(t, color.NRGBA{A: 128}, Mix(color.Black, 0.5))
	assert.Equal(t, uint8(230), Mix(color.White, 0.9).A)
	assert.Equal(t, uint8(255), Mix(color.White, 2).A)
}
