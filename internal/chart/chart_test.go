package chart_test

import (
	"image/color"
	"math"
	"strings"

	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func bars(title string) chart.Figure {
	return chart.Figure{
		Kind:       chart.Bar,
		Title:      title,
		Categories: []string{"North", "South"},
		Series: []chart.Series{
			{Name: "Mining", Values: []float64{10, 20}},
			{Name: "Farming", Values: []float64{5, math.NaN()}},
		},
	}
}

func single(out chart.Output) string {
	ExpectWithOffset(1, out.Panels).To(HaveLen(1))
	return string(out.Panels[0].SVG)
}

var _ = Describe("Figure", func() {
	DescribeTable("renders inline svg",
		func(f chart.Figure) {
			out, err := f.Render()
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Layout).To(Equal(chart.Single))
			svg := single(out)
			Expect(svg).To(HavePrefix("<svg"))
			Expect(svg).NotTo(ContainSubstring("no data"))
		},
		Entry("grouped bars", bars("grouped")),
		Entry("stacked horizontal bars", func() chart.Figure {
			f := bars("stacked")
			f.Stacked, f.Horizontal, f.ValueFormat = true, true, "%.0f"
			return f
		}()),
		Entry("lines on a year axis", chart.Figure{
			Kind: chart.Line, Title: "trend", YearAxis: true,
			RefLines: []chart.RefLine{chart.ZeroY},
			Series: []chart.Series{{Name: "North", Points: []chart.XY{{X: 2019, Y: 3}, {X: 2018, Y: 1}}}},
		}),
		Entry("sized scatter with a diagonal", chart.Figure{
			Kind: chart.Scatter, Title: "gap",
			RefLines: []chart.RefLine{chart.Diagonal, chart.ZeroX},
			Series: []chart.Series{{Name: "p", Points: []chart.XY{
				{X: -1, Y: 2, Size: 3, Color: color.Black, Label: "A"},
				{X: 4, Y: 1, Size: 1},
			}}},
		}),
		Entry("heatmap with missing cells", chart.Figure{
			Kind: chart.Heatmap, Title: "growth", Scale: chart.RdYlGn, Diverging: true, ValueFormat: "%.1f",
			Matrix: &aggregate.Matrix{
				Rows:  []string{"North", "South"},
				Cols:  []string{"2018-2019", "2019-2020"},
				Cells: [][]float64{{5, math.NaN()}, {-3, 2}},
			},
		}),
		Entry("donut", chart.Figure{
			Kind: chart.Pie, Title: "share",
			Slices: []chart.Slice{{Label: "North", Value: 3}, {Label: "South", Value: 1}, {Label: "None", Value: 0}},
		}),
	)

	DescribeTable("renders a placeholder without data",
		func(f chart.Figure) {
			out, err := f.Render()
			Expect(err).NotTo(HaveOccurred())
			Expect(single(out)).To(ContainSubstring("no data"))
		},
		Entry("bars", chart.Figure{Kind: chart.Bar, Title: "empty"}),
		Entry("lines", chart.Figure{Kind: chart.Line, Title: "empty", Series: []chart.Series{{Name: "x"}}}),
		Entry("all-NaN heatmap", chart.Figure{Kind: chart.Heatmap, Title: "empty", Matrix: &aggregate.Matrix{
			Rows: []string{"a"}, Cols: []string{"b"}, Cells: [][]float64{{math.NaN()}},
		}}),
		Entry("zero slices", chart.Figure{Kind: chart.Pie, Title: "empty", Slices: []chart.Slice{{Label: "a"}}}),
	)

	It("escapes the placeholder title", func() {
		out, err := chart.Figure{Kind: chart.Bar, Title: "<b>"}.Render()
		Expect(err).NotTo(HaveOccurred())
		Expect(single(out)).To(ContainSubstring("&lt;b&gt;"))
	})
})

var _ = Describe("Facets", func() {
	It("aligns gonum panels on one canvas", func() {
		out, err := chart.Facets{Title: "by region", Panels: []chart.Figure{bars("a"), bars("b"), bars("c")}}.Render()
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Layout).To(Equal(chart.Single))
		Expect(strings.Count(single(out), "<svg")).To(Equal(1))
	})

	It("lays donuts out as a grid", func() {
		pie := chart.Figure{Kind: chart.Pie, Title: "2019", Slices: []chart.Slice{{Label: "a", Value: 1}}}
		out, err := chart.Facets{Title: "by year", Cols: 3, Panels: []chart.Figure{pie, pie}}.Render()
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Layout).To(Equal(chart.Grid))
		Expect(out.Panels).To(HaveLen(2))
	})

	It("falls back to a placeholder with no panels", func() {
		out, err := chart.Facets{Title: "none"}.Render()
		Expect(err).NotTo(HaveOccurred())
		Expect(single(out)).To(ContainSubstring("no data"))
	})
})

var _ = Describe("Dropdown", func() {
	It("renders one panel per option in order", func() {
		out, err := chart.Dropdown{Title: "pick", Options: []chart.Option{
			{Label: "North", Figure: bars("North")},
			{Label: "South", Figure: chart.Figure{Kind: chart.Bar, Title: "South"}},
		}}.Render()
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Layout).To(Equal(chart.Select))
		Expect(out.Panels).To(HaveLen(2))
		Expect(out.Panels[0].Label).To(Equal("North"))
		Expect(string(out.Panels[1].SVG)).To(ContainSubstring("no data"))
	})
})

var _ = Describe("Scale", func() {
	It("hits its anchors at the ends", func() {
		Expect(chart.RdYlGn.At(0)).To(Equal(chart.RdYlGn[0]))
		Expect(chart.RdYlGn.At(1)).To(Equal(chart.RdYlGn[len(chart.RdYlGn)-1]))
	})

	It("pins zero to the middle when diverging", func() {
		Expect(chart.RdYlGn.Map(0, -2, 10, true)).To(Equal(chart.RdYlGn.At(0.5)))
		Expect(chart.RdYlGn.Map(-10, -2, 10, true)).To(Equal(chart.RdYlGn.At(0)))
	})

	It("samples a palette of the requested size", func() {
		Expect(chart.Viridis.Palette(16).Colors()).To(HaveLen(16))
	})

	It("ignores NaN and Inf in Bounds", func() {
		lo, hi := chart.Bounds([]float64{math.NaN(), 3, -1, math.Inf(1)})
		Expect(lo).To(Equal(-1.0))
		Expect(hi).To(Equal(3.0))
	})
})
