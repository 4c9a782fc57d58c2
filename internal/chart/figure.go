// Package chart turns aggregate frames into inline SVG panels.
//
// Bar, line, scatter and heatmap figures are drawn with gonum/plot; pies
// (donuts) with go-chart. Facets and Dropdown combine several figures into
// one Output the report pages know how to lay out.
package chart

import (
	"bytes"
	"html/template"
	"image/color"
	"math"

	"gdpdash/internal/aggregate"
)

// Kind is the chart type of a Figure.
type Kind int

const (
	Bar Kind = iota
	Line
	Scatter
	Heatmap
	Pie
)

func (k Kind) String() string {
	switch k {
	case Bar:
		return "bar"
	case Line:
		return "line"
	case Scatter:
		return "scatter"
	case Heatmap:
		return "heatmap"
	case Pie:
		return "pie"
	}
	return "unknown"
}

// RefLine is a fixed guide drawn over the data.
type RefLine int

const (
	ZeroY    RefLine = iota // horizontal line at y=0
	ZeroX                   // vertical line at x=0
	Diagonal                // y=x across the data range
)

// XY is one line or scatter point. Size and Color are optional per-point
// overrides for scatter glyphs.
type XY struct {
	X, Y  float64
	Size  float64
	Color color.Color
	Label string
}

// Series is one named trace. Bars read Values (aligned with
// Figure.Categories, NaN for absent); lines and scatters read Points.
type Series struct {
	Name   string
	Values []float64
	Points []XY
	Color  color.Color
}

// Slice is one pie segment.
type Slice struct {
	Label string
	Value float64
}

// Figure is a single chart with fixed cosmetics.
type Figure struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	Categories []string
	Series     []Series
	Slices     []Slice
	Matrix     *aggregate.Matrix

	Stacked    bool
	Horizontal bool
	YearAxis   bool // integer ticks on the x axis
	Scale      Scale
	Diverging  bool // center Scale on zero
	RefLines   []RefLine
	// ValueFormat, when set, prints each bar value (or heatmap cell) with
	// this fmt verb.
	ValueFormat string

	Height int // pixels; DefaultHeight when zero
	Width  int // pixels; DefaultWidth when zero
}

const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

// Layout tells the page how to arrange an Output's panels.
type Layout int

const (
	Single Layout = iota
	Grid
	Select
)

// Panel is one rendered SVG with the label used to pick it.
type Panel struct {
	Label string
	Title string
	SVG   template.HTML
}

// Output is what the report embeds for one chart.
type Output struct {
	Title  string
	Layout Layout
	Panels []Panel
}

// Renderable is implemented by Figure, Facets and Dropdown.
type Renderable interface {
	Render() (Output, error)
}

// Render draws the figure as a single panel.
func (f Figure) Render() (Output, error) {
	svg, err := f.SVG()
	if err != nil {
		return Output{}, err
	}
	return Output{Title: f.Title, Layout: Single, Panels: []Panel{{Label: f.Title, Title: f.Title, SVG: svg}}}, nil
}

// SVG renders the figure to inline markup. Figures without data produce a
// placeholder rather than an error.
func (f Figure) SVG() (template.HTML, error) {
	if f.empty() {
		return placeholder(f.Title, f.width(), f.height()), nil
	}
	if f.Kind == Pie {
		return f.pieSVG()
	}
	p, err := f.Plot()
	if err != nil {
		return "", err
	}
	return plotSVG(p, f.width(), f.height())
}

func (f Figure) empty() bool {
	switch f.Kind {
	case Pie:
		for _, s := range f.Slices {
			if s.Value > 0 {
				return false
			}
		}
		return true
	case Heatmap:
		if f.Matrix == nil || len(f.Matrix.Rows) == 0 || len(f.Matrix.Cols) == 0 {
			return true
		}
		for _, row := range f.Matrix.Cells {
			for _, v := range row {
				if !math.IsNaN(v) {
					return false
				}
			}
		}
		return true
	case Bar:
		return len(f.Categories) == 0 || len(f.Series) == 0
	}
	for _, s := range f.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

func (f Figure) width() int {
	if f.Width > 0 {
		return f.Width
	}
	return DefaultWidth
}

func (f Figure) height() int {
	if f.Height > 0 {
		return f.Height
	}
	return DefaultHeight
}

// inline strips anything before the <svg> element (XML prolog, doctype).
func inline(b []byte) template.HTML {
	if i := bytes.Index(b, []byte("<svg")); i > 0 {
		b = b[i:]
	}
	return template.HTML(b)
}
