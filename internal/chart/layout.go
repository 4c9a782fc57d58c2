package chart

import (
	"bytes"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Facets draws one small figure per group. Gonum-backed panels are aligned
// on a single canvas; donuts are emitted as a grid of separate SVGs.
type Facets struct {
	Title  string
	Cols   int // default 2
	RowPx  int // pixel height of one row, default 360
	Panels []Figure
}

func (fc Facets) cols() int {
	if fc.Cols > 0 {
		return fc.Cols
	}
	return 2
}

func (fc Facets) rowPx() int {
	if fc.RowPx > 0 {
		return fc.RowPx
	}
	return 360
}

// Render tiles the panels. With no panels the output is a placeholder.
func (fc Facets) Render() (Output, error) {
	if len(fc.Panels) == 0 {
		return Output{Title: fc.Title, Layout: Single, Panels: []Panel{{
			Label: fc.Title, Title: fc.Title, SVG: placeholder(fc.Title, DefaultWidth, DefaultHeight),
		}}}, nil
	}
	for _, f := range fc.Panels {
		if f.Kind == Pie {
			return fc.renderGrid()
		}
	}
	return fc.renderAligned()
}

func (fc Facets) renderGrid() (Output, error) {
	out := Output{Title: fc.Title, Layout: Grid}
	w := DefaultWidth / fc.cols()
	for _, f := range fc.Panels {
		f.Width, f.Height = w, fc.rowPx()
		svg, err := f.SVG()
		if err != nil {
			return Output{}, err
		}
		out.Panels = append(out.Panels, Panel{Label: f.Title, Title: f.Title, SVG: svg})
	}
	return out, nil
}

func (fc Facets) renderAligned() (Output, error) {
	cols := fc.cols()
	if len(fc.Panels) < cols {
		cols = len(fc.Panels)
	}
	rows := (len(fc.Panels) + cols - 1) / cols

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
		for c := range plots[r] {
			i := r*cols + c
			if i >= len(fc.Panels) {
				plots[r][c] = filler()
				continue
			}
			p, err := fc.Panels[i].facetPlot()
			if err != nil {
				return Output{}, err
			}
			plots[r][c] = p
		}
	}

	img := vgsvg.New(pixels(DefaultWidth), pixels(fc.rowPx()*rows))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	var buf bytes.Buffer
	if _, err := img.WriteTo(&buf); err != nil {
		return Output{}, eris.Wrapf(err, "chart: facets %q", fc.Title)
	}
	return Output{Title: fc.Title, Layout: Single, Panels: []Panel{{
		Label: fc.Title, Title: fc.Title, SVG: inline(buf.Bytes()),
	}}}, nil
}

// facetPlot is Plot with a panel sized title; an empty panel still gets
// its title so the grid stays readable.
func (f Figure) facetPlot() (*plot.Plot, error) {
	if f.empty() {
		p := filler()
		p.Title.Text = f.Title + " (no data)"
		return p, nil
	}
	p, err := f.Plot()
	if err != nil {
		return nil, err
	}
	p.Title.TextStyle.Font.Size = vg.Points(11)
	return p, nil
}

func filler() *plot.Plot {
	p := plot.New()
	p.HideAxes()
	return p
}

// Option is one entry of a Dropdown.
type Option struct {
	Label  string
	Figure Figure
}

// Dropdown pre-renders one panel per option. The page shows the first and
// swaps panels on selection.
type Dropdown struct {
	Title   string
	Options []Option
}

// Render draws every option. With no options the output is a placeholder.
func (d Dropdown) Render() (Output, error) {
	if len(d.Options) == 0 {
		return Output{Title: d.Title, Layout: Single, Panels: []Panel{{
			Label: d.Title, Title: d.Title, SVG: placeholder(d.Title, DefaultWidth, DefaultHeight),
		}}}, nil
	}
	out := Output{Title: d.Title, Layout: Select}
	for _, o := range d.Options {
		svg, err := o.Figure.SVG()
		if err != nil {
			return Output{}, err
		}
		out.Panels = append(out.Panels, Panel{Label: o.Label, Title: o.Figure.Title, SVG: svg})
	}
	return out, nil
}
