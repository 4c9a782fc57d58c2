package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// Series colors, cycled by index.
var defaultColors = []color.Color{
	hex("#4F46E5"), hex("#10B981"), hex("#F59E0B"), hex("#EF4444"), hex("#8B5CF6"),
	hex("#06B6D4"), hex("#EC4899"), hex("#84CC16"), hex("#F97316"), hex("#6366F1"),
}

var (
	Red   = hex("#D73027")
	Green = hex("#1A9850")
	Grey  = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// SeriesColor returns the palette color for the i-th series.
func SeriesColor(i int) color.Color {
	return defaultColors[i%len(defaultColors)]
}

// Scale is a continuous color scale defined by evenly spaced anchors.
type Scale []color.Color

var (
	// RdYlGn runs red (low) through yellow to green (high).
	RdYlGn = Scale{hex("#D73027"), hex("#FC8D59"), hex("#FEE08B"), hex("#D9EF8B"), hex("#91CF60"), hex("#1A9850")}
	// Viridis is the sequential purple-to-yellow scale.
	Viridis = Scale{hex("#440154"), hex("#414487"), hex("#2A788E"), hex("#22A884"), hex("#7AD151"), hex("#FDE725")}
)

// At interpolates the scale at t in [0, 1].
func (s Scale) At(t float64) color.Color {
	if len(s) == 0 {
		return color.Black
	}
	if math.IsNaN(t) || t <= 0 {
		return s[0]
	}
	if t >= 1 {
		return s[len(s)-1]
	}
	pos := t * float64(len(s)-1)
	i := int(pos)
	frac := pos - float64(i)
	a := color.RGBAModel.Convert(s[i]).(color.RGBA)
	b := color.RGBAModel.Convert(s[i+1]).(color.RGBA)
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac)) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Map places v within [lo, hi]. With diverging set the midpoint of the
// scale is pinned to zero.
func (s Scale) Map(v, lo, hi float64, diverging bool) color.Color {
	if diverging {
		m := math.Max(math.Abs(lo), math.Abs(hi))
		if m == 0 {
			return s.At(0.5)
		}
		return s.At(0.5 + v/(2*m))
	}
	if hi == lo {
		return s.At(0.5)
	}
	return s.At((v - lo) / (hi - lo))
}

// Palette samples n colors for gonum heat maps.
func (s Scale) Palette(n int) palette.Palette {
	out := make(colors, n)
	for i := range out {
		out[i] = s.At(float64(i) / float64(n-1))
	}
	return out
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// Bounds returns the finite min and max of vs, or (0, 0) when none.
func Bounds(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

func hex(s string) color.RGBA {
	var c color.RGBA
	c.A = 255
	fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	return c
}
