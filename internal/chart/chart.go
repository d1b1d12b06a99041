// Package chart renders frequency response series onto a log-scale SVG chart.
//
// A Chart is configured first (New, AddSeries) and committed once with Render.
// All layout, scaling and SVG serialization is done by gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/freqplot/pkg/models"
)

var ErrInvalidConfig = errors.New("invalid chart configuration")

// SansSerif is the bundled Liberation Sans face.
var SansSerif = font.Font{Typeface: "Liberation", Variant: "Sans"}

// Config describes the chart layout. Sizes are in pixels; area and margin
// fractions are relative to the smaller side of the chart region.
type Config struct {
	Width      int
	Height     int
	SplitAt    int
	Background color.Color
	Font       font.Font

	Title      string
	TitleSize  float64
	TitleColor color.Color

	Caption      string
	CaptionScale float64 // of chart region height

	LeftLabelArea   float64
	BottomLabelArea float64
	Margin          float64

	XMin, XMax float64
	XKeyPoints []float64
	XLabel     string

	YMin, YMax float64
	YKeyPoints []float64
	YLabel     string

	LabelSize   float64
	LineWidth   float64
	SeriesAlpha float64
	SwatchSize  float64
	GridColor   color.Color

	LegendBorder     color.Color
	LegendBackground color.Color
}

// DefaultConfig returns the log-scale frequency response layout.
func DefaultConfig() Config {
	return Config{
		Width:      1024,
		Height:     768,
		SplitAt:    750,
		Background: color.White,
		Font:       SansSerif,

		Title:      "log-scale sample",
		TitleSize:  10,
		TitleColor: Mix(color.Black, 0.5),

		Caption:      "FREQUENCY RESPONSE",
		CaptionScale: 0.05,

		LeftLabelArea:   0.08,
		BottomLabelArea: 0.04,
		Margin:          0.01,

		XMin:       1,
		XMax:       10_000,
		XKeyPoints: []float64{1, 10, 100, 1000, 10_000},
		XLabel:     "freq [Hz]",

		YMin:       0,
		YMax:       100,
		YKeyPoints: []float64{0, 20, 40, 60, 80, 100},
		YLabel:     "gain [dB]",

		LabelSize:   12,
		LineWidth:   3,
		SeriesAlpha: 0.9,
		SwatchSize:  10,
		GridColor:   Mix(color.Black, 0.2),

		LegendBorder:     color.Black,
		LegendBackground: Mix(color.White, 0.8),
	}
}

func (cfg Config) validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("%w: surface %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	case cfg.SplitAt <= 0 || cfg.SplitAt > cfg.Height:
		return fmt.Errorf("%w: split at %d outside surface height %d", ErrInvalidConfig, cfg.SplitAt, cfg.Height)
	case !(cfg.XMin > 0) || cfg.XMin >= cfg.XMax:
		return fmt.Errorf("%w: log x range [%g, %g]", ErrInvalidConfig, cfg.XMin, cfg.XMax)
	case cfg.YMin >= cfg.YMax:
		return fmt.Errorf("%w: y range [%g, %g]", ErrInvalidConfig, cfg.YMin, cfg.YMax)
	case cfg.LineWidth <= 0:
		return fmt.Errorf("%w: line width %g", ErrInvalidConfig, cfg.LineWidth)
	}
	return nil
}

// Line is a series projected onto chart coordinates.
type Line struct {
	Name  string
	Color color.Color
	XYs   plotter.XYs
}

// Chart is a configured, not yet rendered, frequency response chart.
type Chart struct {
	cfg   Config
	lines []*Line
}

// New returns an empty chart with the given layout.
func New(cfg Config) (*Chart, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Chart{cfg: cfg}, nil
}

// AddSeries registers s as the next line. Its color is picked from the
// palette by registration order and every sample is truncated to integer
// chart coordinates.
func (c *Chart) AddSeries(s *models.Series) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, l := range c.lines {
		if l.Name == s.Name {
			return &models.SeriesError{Series: s.Name, Err: models.ErrDuplicateSeries}
		}
	}

	xys := make(plotter.XYs, len(s.Samples))
	for i, p := range s.Samples {
		x := project(p.Frequency)
		if x <= 0 {
			return &models.SeriesError{Series: s.Name, Index: i, Err: models.ErrOutOfLogDomain}
		}
		xys[i] = plotter.XY{X: x, Y: project(p.Gain)}
	}

	c.lines = append(c.lines, &Line{
		Name:  s.Name,
		Color: Mix(Pick(len(c.lines)), c.cfg.SeriesAlpha),
		XYs:   xys,
	})
	return nil
}

// Lines returns the registered lines in drawing order.
func (c *Chart) Lines() []*Line {
	return c.lines
}

// project truncates v toward zero onto the unsigned 32-bit grid,
// saturating at both ends.
func project(v float64) float64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return math.Trunc(v)
}

// Render draws the chart and writes the finished SVG document to w.
func (c *Chart) Render(w io.Writer) (int64, error) {
	cfg := c.cfg
	s := newSurface(cfg.Width, cfg.Height, cfg.Background)
	upper, lower := s.split(cfg.SplitAt)

	titled(lower, text.Style{
		Color:   cfg.TitleColor,
		Font:    font.From(cfg.Font, pixels(cfg.TitleSize)),
		Handler: plot.DefaultTextHandler,
	}, cfg.Title)

	smaller := vg.Length(math.Min(float64(upper.Size().X), float64(upper.Size().Y)))
	area := inset(upper, smaller*vg.Length(cfg.Margin))

	p, err := c.plot(upper.Size().Y)
	if err != nil {
		return 0, err
	}
	reserveLabelArea(&p.Y, smaller*vg.Length(cfg.LeftLabelArea), yAxisSize(&p.Y))
	reserveLabelArea(&p.X, smaller*vg.Length(cfg.BottomLabelArea), xAxisSize(&p.X))

	p.Draw(area)
	newLegend(cfg, c.lines).draw(p.DataCanvas(area))

	n, err := s.finalize(w)
	if err != nil {
		return n, fmt.Errorf("failed to write svg: %w", err)
	}
	return n, nil
}

// plot builds the gonum plot: caption, axes, mesh and one line per series.
func (c *Chart) plot(regionHeight vg.Length) (*plot.Plot, error) {
	cfg := c.cfg
	p := plot.New()
	p.BackgroundColor = nil

	p.Title.Text = cfg.Caption
	p.Title.TextStyle.Font = font.From(cfg.Font, regionHeight*vg.Length(cfg.CaptionScale))
	p.Title.Padding = pixels(cfg.LabelSize) / 2

	grid := plotter.NewGrid()
	grid.Vertical.Color = cfg.GridColor
	grid.Horizontal.Color = cfg.GridColor
	p.Add(grid)

	for _, l := range c.lines {
		line, err := plotter.NewLine(l.XYs)
		if err != nil {
			return nil, fmt.Errorf("failed to build line %q: %w", l.Name, err)
		}
		line.Color = l.Color
		line.Width = pixels(cfg.LineWidth)
		p.Add(line)
	}

	// Axis ranges are fixed; set them after Add, which widens to the data.
	p.X.Min, p.X.Max = cfg.XMin, cfg.XMax
	p.X.Scale = plot.LogScale{}
	p.Y.Min, p.Y.Max = cfg.YMin, cfg.YMax
	p.Y.Scale = plot.LinearScale{}

	styleAxis(&p.X, cfg, cfg.XLabel, cfg.XKeyPoints)
	styleAxis(&p.Y, cfg, cfg.YLabel, cfg.YKeyPoints)
	return p, nil
}

func styleAxis(a *plot.Axis, cfg Config, label string, keys []float64) {
	f := font.From(cfg.Font, pixels(cfg.LabelSize))
	a.Label.Text = label
	a.Label.TextStyle.Font = f
	a.Tick.Label.Font = f
	a.Tick.Length = pixels(5)
	a.Tick.Marker = keyPoints(keys)
}

// keyPoints places a labeled major tick at each value.
func keyPoints(values []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)}
	}
	return ticks
}

// xAxisSize is the height gonum/plot gives the horizontal axis.
func xAxisSize(a *plot.Axis) (h vg.Length) {
	if a.Label.Text != "" {
		h += a.Label.TextStyle.Height(a.Label.Text) + a.Label.Padding
	}
	if ticks := majorTicks(a); len(ticks) > 0 {
		h += tickLength(a)
		var tallest vg.Length
		for _, t := range ticks {
			r := a.Tick.Label.Rectangle(t.Label)
			tallest = max(tallest, r.Max.Y-r.Min.Y)
		}
		h += tallest
	}
	return h + a.Width/2 + a.Padding
}

// yAxisSize is the width gonum/plot gives the vertical axis.
func yAxisSize(a *plot.Axis) (w vg.Length) {
	if a.Label.Text != "" {
		w += a.Label.TextStyle.FontExtents().Descent
		w += a.Label.TextStyle.Height(a.Label.Text) + a.Label.Padding
	}
	if ticks := majorTicks(a); len(ticks) > 0 {
		var widest vg.Length
		for _, t := range ticks {
			r := a.Tick.Label.Rectangle(t.Label)
			widest = max(widest, r.Max.X-r.Min.X)
		}
		if widest > 0 {
			w += widest + a.Label.TextStyle.Width(" ")
		}
		w += tickLength(a)
	}
	return w + a.Width/2 + a.Padding
}

func majorTicks(a *plot.Axis) []plot.Tick {
	var out []plot.Tick
	for _, t := range a.Tick.Marker.Ticks(a.Min, a.Max) {
		if !t.IsMinor() {
			out = append(out, t)
		}
	}
	return out
}

func tickLength(a *plot.Axis) vg.Length {
	if a.Tick.Width > 0 && a.Tick.Length > 0 {
		return a.Tick.Length
	}
	return 0
}

// reserveLabelArea grows the axis label padding so the axis takes at least want.
func reserveLabelArea(a *plot.Axis, want, used vg.Length) {
	if extra := want - used; extra > 0 {
		a.Label.Padding += extra
	}
}
