package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/plotutil"
)

// Pick returns the categorical palette color for the series at idx.
// Indexes past the end of the palette wrap around.
func Pick(idx int) color.Color {
	return plotutil.Color(idx)
}

// Mix scales the opacity of clr by alpha, which is clamped to [0, 1].
func Mix(clr color.Color, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}
