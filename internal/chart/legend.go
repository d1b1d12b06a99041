package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// swatch is a filled square legend thumbnail.
type swatch struct {
	color color.Color
	size  vg.Length
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	cy := (c.Min.Y + c.Max.Y) / 2
	half := s.size / 2
	c.FillPolygon(s.color, []vg.Point{
		{X: c.Min.X, Y: cy - half},
		{X: c.Min.X + s.size, Y: cy - half},
		{X: c.Min.X + s.size, Y: cy + half},
		{X: c.Min.X, Y: cy + half},
	})
}

// legend draws plot.Legend entries inside a filled, bordered box
// anchored to the upper left of the data area.
type legend struct {
	plot.Legend
	n      int
	border draw.LineStyle
	fill   color.Color
	inset  vg.Length
}

func newLegend(cfg Config, lines []*Line) *legend {
	l := &legend{
		Legend: plot.NewLegend(),
		border: draw.LineStyle{Color: cfg.LegendBorder, Width: pixels(1)},
		fill:   cfg.LegendBackground,
		inset:  pixels(cfg.SwatchSize) / 2,
	}
	l.TextStyle.Font = font.From(cfg.Font, pixels(cfg.LabelSize))
	l.Top, l.Left = true, true
	l.ThumbnailWidth = pixels(cfg.SwatchSize)
	l.Padding = pixels(cfg.LabelSize) / 2
	l.XOffs = 3 * l.inset
	l.YOffs = -3 * l.inset
	for _, ln := range lines {
		l.Add(ln.Name, swatch{color: ln.Color, size: pixels(cfg.SwatchSize)})
		l.n++
	}
	return l
}

// box returns the border rectangle around the entries drawn on c.
func (l *legend) box(c draw.Canvas) vg.Rectangle {
	size := l.Legend.Rectangle(c).Size()
	descent := l.TextStyle.FontExtents().Descent
	top := c.Max.Y + l.YOffs - descent
	left := c.Min.X + l.XOffs
	return vg.Rectangle{
		Min: vg.Point{X: left - l.inset, Y: top - size.Y - l.inset},
		Max: vg.Point{X: left + size.X + l.inset, Y: top + l.inset},
	}
}

func (l *legend) draw(c draw.Canvas) {
	if l.n == 0 {
		return
	}
	r := l.box(c)
	corners := []vg.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
	if l.fill != nil {
		c.FillPolygon(l.fill, corners)
	}
	c.StrokeLines(l.border, append(corners, r.Min))
	l.Legend.Draw(c)
}
