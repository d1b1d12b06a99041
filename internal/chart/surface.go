package chart

import (
	"image/color"
	"io"

	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// px is one CSS pixel.
const px = vg.Inch / 96

func pixels(v float64) vg.Length {
	return vg.Length(v) * px
}

// surface is the SVG drawing target. Nothing reaches the writer until finalize.
type surface struct {
	svg  *vgsvg.Canvas
	root draw.Canvas
}

func newSurface(width, height int, background color.Color) *surface {
	svg := vgsvg.New(pixels(float64(width)), pixels(float64(height)))
	root := draw.New(svg)
	if background != nil {
		root.SetColor(background)
		root.Fill(root.Rectangle.Path())
	}
	return &surface{svg: svg, root: root}
}

// split cuts the surface horizontally at the given pixel offset from the top.
func (s *surface) split(at int) (upper, lower draw.Canvas) {
	h := s.root.Size().Y
	cut := pixels(float64(at))
	upper = draw.Crop(s.root, 0, 0, h-cut, 0)
	lower = draw.Crop(s.root, 0, 0, 0, -cut)
	return upper, lower
}

// titled draws title centered along the top edge of c.
func titled(c draw.Canvas, sty text.Style, title string) {
	if title == "" {
		return
	}
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	c.FillText(sty, vg.Point{X: c.Center().X, Y: c.Max.Y}, title)
}

// inset shrinks c by m on every side.
func inset(c draw.Canvas, m vg.Length) draw.Canvas {
	return draw.Crop(c, m, -m, m, -m)
}

func (s *surface) finalize(w io.Writer) (int64, error) {
	return s.svg.WriteTo(w)
}
