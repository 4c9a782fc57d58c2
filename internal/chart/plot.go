package chart

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pixels converts a browser pixel size to a vg length at 96 dpi.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}

// Plot builds the gonum plot for every kind except Pie.
func (f Figure) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.Legend.Top = true

	var err error
	switch f.Kind {
	case Bar:
		err = f.addBars(p)
	case Line:
		err = f.addLines(p)
	case Scatter:
		err = f.addScatter(p)
	case Heatmap:
		err = f.addHeatmap(p)
	default:
		err = eris.Errorf("chart: %s is not drawn with gonum/plot", f.Kind)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "chart: %q", f.Title)
	}

	if f.Kind != Heatmap {
		p.Add(plotter.NewGrid())
	}
	if f.YearAxis {
		p.X.Tick.Marker = plot.TickerFunc(yearTicks)
	}
	if err := f.addRefLines(p); err != nil {
		return nil, eris.Wrapf(err, "chart: %q", f.Title)
	}
	return p, nil
}

func (f Figure) addBars(p *plot.Plot) error {
	n := len(f.Series)
	slots := len(f.Categories)
	if !f.Stacked {
		slots *= n
	}
	width := vg.Points(math.Min(40, math.Max(4, 560/float64(slots))))

	var below *plotter.BarChart
	for i, s := range f.Series {
		vals := make(plotter.Values, len(f.Categories))
		for j := range vals {
			if j < len(s.Values) && !math.IsNaN(s.Values[j]) {
				vals[j] = s.Values[j]
			}
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return err
		}
		bars.Color = s.Color
		if bars.Color == nil {
			bars.Color = SeriesColor(i)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Horizontal = f.Horizontal
		if f.Stacked {
			if below != nil {
				bars.StackOn(below)
			}
			below = bars
		} else {
			bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width
		}
		p.Add(bars)
		if s.Name != "" {
			p.Legend.Add(s.Name, bars)
		}
	}

	if f.Horizontal {
		p.NominalY(f.Categories...)
	} else {
		p.NominalX(f.Categories...)
		if len(f.Categories) > 6 {
			p.X.Tick.Label.Rotation = math.Pi / 4
			p.X.Tick.Label.XAlign = draw.XRight
			p.X.Tick.Label.YAlign = draw.YCenter
		}
	}

	if f.ValueFormat != "" {
		return f.addBarLabels(p)
	}
	return nil
}

// addBarLabels prints the value next to each bar. Only meaningful for one
// visible bar per category (single series or disjoint stacked series).
func (f Figure) addBarLabels(p *plot.Plot) error {
	var (
		xys    plotter.XYs
		labels []string
	)
	for j := range f.Categories {
		var v float64
		found := false
		for _, s := range f.Series {
			if j < len(s.Values) && !math.IsNaN(s.Values[j]) && s.Values[j] != 0 {
				v += s.Values[j]
				found = true
			}
		}
		if !found {
			continue
		}
		pt := plotter.XY{X: float64(j), Y: v}
		if f.Horizontal {
			pt = plotter.XY{X: v, Y: float64(j)}
		}
		xys = append(xys, pt)
		labels = append(labels, fmt.Sprintf(f.ValueFormat, v))
	}
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

func (f Figure) addLines(p *plot.Plot) error {
	for i, s := range f.Series {
		if len(s.Points) == 0 {
			continue
		}
		pts := sortedXYs(s.Points)
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		c := s.Color
		if c == nil {
			c = SeriesColor(i)
		}
		line.Color = c
		line.Width = vg.Points(2)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(3)
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}
	return nil
}

func (f Figure) addScatter(p *plot.Plot) error {
	var (
		labelXYs plotter.XYs
		labels   []string
	)
	for i, s := range f.Series {
		if len(s.Points) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			pts[j] = plotter.XY{X: pt.X, Y: pt.Y}
			if pt.Label != "" {
				labelXYs = append(labelXYs, pts[j])
				labels = append(labels, pt.Label)
			}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		base := s.Color
		if base == nil {
			base = SeriesColor(i)
		}
		points := s.Points
		sizes := make([]float64, len(points))
		for j, pt := range points {
			sizes[j] = pt.Size
		}
		_, maxSize := Bounds(sizes)
		sc.GlyphStyleFunc = func(j int) draw.GlyphStyle {
			g := draw.GlyphStyle{Color: base, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
			if points[j].Color != nil {
				g.Color = points[j].Color
			}
			if maxSize > 0 && points[j].Size > 0 {
				g.Radius = vg.Points(4 + 14*points[j].Size/maxSize)
			}
			return g
		}
		p.Add(sc)
		if s.Name != "" {
			p.Legend.Add(s.Name, sc)
		}
	}
	if len(labelXYs) > 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return nil
}

// matrixGrid adapts an aggregate matrix to plotter.GridXYZ. Columns map to
// x and rows to y, one unit apart.
type matrixGrid struct {
	cells [][]float64
	cols  int
}

func (g matrixGrid) Dims() (c, r int) { return g.cols, len(g.cells) }
func (g matrixGrid) Z(c, r int) float64 { return g.cells[r][c] }
func (g matrixGrid) X(c int) float64 { return float64(c) }
func (g matrixGrid) Y(r int) float64 { return float64(r) }

func (f Figure) addHeatmap(p *plot.Plot) error {
	m := f.Matrix
	scale := f.Scale
	if scale == nil {
		scale = Viridis
	}

	var all []float64
	for _, row := range m.Cells {
		all = append(all, row...)
	}
	lo, hi := Bounds(all)
	if f.Diverging {
		a := math.Max(math.Abs(lo), math.Abs(hi))
		lo, hi = -a, a
	}
	if hi == lo {
		hi = lo + 1
	}

	h := plotter.NewHeatMap(matrixGrid{cells: m.Cells, cols: len(m.Cols)}, scale.Palette(64))
	h.Min, h.Max = lo, hi
	h.NaN = Grey
	p.Add(h)
	p.NominalX(m.Cols...)
	p.NominalY(m.Rows...)
	if len(m.Cols) > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
	}

	if f.ValueFormat == "" || len(m.Rows)*len(m.Cols) > 400 {
		return nil
	}
	var (
		xys    plotter.XYs
		labels []string
	)
	for r, row := range m.Cells {
		for c, v := range row {
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			labels = append(labels, fmt.Sprintf(f.ValueFormat, v))
		}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		l.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(l)
	return nil
}

func (f Figure) addRefLines(p *plot.Plot) error {
	for _, ref := range f.RefLines {
		switch ref {
		case ZeroY:
			zero := plotter.NewFunction(func(float64) float64 { return 0 })
			zero.Color = Red
			zero.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
			p.Add(zero)
		case ZeroX:
			if err := addSegment(p, plotter.XYs{{X: 0, Y: p.Y.Min}, {X: 0, Y: p.Y.Max}}, color.Black); err != nil {
				return err
			}
		case Diagonal:
			lo := math.Min(p.X.Min, p.Y.Min)
			hi := math.Max(p.X.Max, p.Y.Max)
			if err := addSegment(p, plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}}, Red); err != nil {
				return err
			}
		}
	}
	return nil
}

func addSegment(p *plot.Plot, xys plotter.XYs, c color.Color) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = vg.Points(1.5)
	l.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(l)
	return nil
}

// yearTicks labels every whole year when the span is short enough to read.
func yearTicks(lo, hi float64) []plot.Tick {
	if hi-lo > 30 {
		return plot.DefaultTicks{}.Ticks(lo, hi)
	}
	var ticks []plot.Tick
	for y := math.Ceil(lo); y <= hi; y++ {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	return ticks
}

func sortedXYs(points []XY) plotter.XYs {
	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}

func plotSVG(p *plot.Plot, w, h int) (template.HTML, error) {
	wt, err := p.WriterTo(pixels(w), pixels(h), "svg")
	if err != nil {
		return "", eris.Wrap(err, "chart: svg writer")
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return "", eris.Wrap(err, "chart: write svg")
	}
	return inline(buf.Bytes()), nil
}

func placeholder(title string, w, h int) template.HTML {
	if h > 200 {
		h = 200
	}
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#777">%s: no data</text></svg>`,
		w, h, html.EscapeString(title)))
}
