package report

import (
	"sort"

	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"
	"gdpdash/internal/dataset"
)

func (b *Builder) twoYearGrowth() (chart.Renderable, aggregate.Table) {
	m := aggregate.PivotChanges(b.regionGrowth())
	return chart.Figure{
		Kind:        chart.Heatmap,
		Title:       "Year-over-Year Growth Rates by Region (%)",
		XLabel:      "Year Comparison",
		YLabel:      "Region",
		Matrix:      &m,
		Scale:       chart.RdYlGn,
		Diverging:   true,
		ValueFormat: "%.1f",
	}, aggregate.MatrixTable(m, dataset.ColRegion)
}

func (b *Builder) growthTrends() (chart.Renderable, aggregate.Table) {
	return b.growthLines("Growth Rate Trends by Region (%)")
}

func (b *Builder) fastestGrowing() (chart.Renderable, aggregate.Table) {
	stats := aggregate.MeanStd(b.regionGrowth())
	sorted := append([]aggregate.Stats(nil), stats...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Mean < sorted[j].Mean })

	cats := make([]string, len(sorted))
	means := make([]float64, len(sorted))
	for i, s := range sorted {
		cats[i], means[i] = s.Group, s.Mean
	}
	series := colored(cats, means, func(i int) chart.Series {
		if means[i] < 0 {
			return chart.Series{Color: chart.Red}
		}
		return chart.Series{Color: chart.Green}
	})

	return chart.Figure{
		Kind:        chart.Bar,
		Title:       "Average Growth Rate by Region: Fastest Growing vs Shrinking",
		XLabel:      "Average Growth Rate (%)",
		YLabel:      "Region",
		Categories:  cats,
		Series:      series,
		Stacked:     true,
		Horizontal:  true,
		ValueFormat: "%.1f%%",
		RefLines:    []chart.RefLine{chart.ZeroX},
	}, aggregate.StatsTable(sorted, dataset.ColRegion, "")
}

func (b *Builder) industryGrowthLeaders() (chart.Renderable, aggregate.Table) {
	yearly := aggregate.SumByYear(b.data.Records, aggregate.ByRegion, aggregate.ByIndustry)
	leaders := aggregate.Leaders(aggregate.MeanStd(aggregate.PercentChange(yearly)))

	cats := make([]string, len(leaders))
	for i, l := range leaders {
		cats[i] = l.Group
	}
	// One series per leading industry so the legend names it.
	var series []chart.Series
	idx := make(map[string]int)
	for i, l := range leaders {
		j, ok := idx[l.Sub]
		if !ok {
			j = len(series)
			idx[l.Sub] = j
			series = append(series, chart.Series{Name: l.Sub, Values: nanValues(len(cats))})
		}
		series[j].Values[i] = l.Mean
	}

	return chart.Figure{
		Kind:        chart.Bar,
		Title:       "Fastest Growing Industry by Region",
		XLabel:      "Region",
		YLabel:      "Average Growth Rate (%)",
		Categories:  cats,
		Series:      series,
		Stacked:     true,
		ValueFormat: "%.1f%%",
		RefLines:    []chart.RefLine{chart.ZeroY},
	}, aggregate.StatsTable(leaders, dataset.ColRegion, dataset.ColIndustry)
}

func (b *Builder) growthVolatility() (chart.Renderable, aggregate.Table) {
	var stats []aggregate.Stats
	for _, s := range aggregate.MeanStd(b.regionGrowth()) {
		if s.N > 1 {
			stats = append(stats, s)
		}
	}

	means := make([]float64, len(stats))
	for i, s := range stats {
		means[i] = s.Mean
	}
	lo, hi := chart.Bounds(means)
	pts := make([]chart.XY, len(stats))
	for i, s := range stats {
		pts[i] = chart.XY{
			X:     s.Mean,
			Y:     s.StdDev,
			Size:  s.StdDev,
			Color: chart.RdYlGn.Map(s.Mean, lo, hi, false),
			Label: s.Group,
		}
	}

	var series []chart.Series
	if len(pts) > 0 {
		series = []chart.Series{{Points: pts}}
	}
	return chart.Figure{
		Kind:   chart.Scatter,
		Title:  "Growth Rate vs Volatility by Region",
		XLabel: "Average Growth Rate (%)",
		YLabel: "Growth Volatility (Standard Deviation)",
		Series: series,
	}, aggregate.StatsTable(stats, dataset.ColRegion, "")
}
