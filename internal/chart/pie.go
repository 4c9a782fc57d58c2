package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"image/color"

	"github.com/rotisserie/eris"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// pieSVG draws the positive slices as a donut. Labels carry the percentage
// of the visible total.
func (f Figure) pieSVG() (template.HTML, error) {
	var total float64
	for _, s := range f.Slices {
		if s.Value > 0 {
			total += s.Value
		}
	}

	var values []gochart.Value
	for i, s := range f.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Value: s.Value,
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Value/total*100),
			Style: gochart.Style{
				FillColor:   drawingColor(SeriesColor(i)),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontSize:    9,
			},
		})
	}

	donut := gochart.DonutChart{
		Title:  f.Title,
		Width:  f.width(),
		Height: f.height(),
		TitleStyle: gochart.Style{
			FontSize: 14,
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(gochart.SVG, &buf); err != nil {
		return "", eris.Wrapf(err, "chart: donut %q", f.Title)
	}
	return inline(buf.Bytes()), nil
}

func drawingColor(c color.Color) drawing.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return drawing.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
}
