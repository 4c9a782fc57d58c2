package report

import (
	"fmt"

	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"
	"gdpdash/internal/dataset"
)

func (b *Builder) regionTopIndustries() (chart.Renderable, aggregate.Table) {
	top := aggregate.TopN(b.data.InYear(b.latest).Records, aggregate.ByRegion, b.cfg.TopIndustries)
	totals := aggregate.Sum(top, aggregate.ByIndustry, aggregate.ByRegion)

	regions := dataset.NewTable(top).Regions()
	col := make(map[string]int, len(regions))
	for i, r := range regions {
		col[r] = i
	}
	var series []chart.Series
	for _, ind := range dataset.NewTable(top).Industries() {
		s := chart.Series{Name: ind, Values: nanValues(len(regions))}
		for _, t := range totals {
			if t.Group == ind {
				s.Values[col[t.Sub]] = t.Value
			}
		}
		series = append(series, s)
	}

	return chart.Figure{
		Kind:       chart.Bar,
		Title:      fmt.Sprintf("Top Thriving Industries by Region (%d)", b.latest),
		XLabel:     "Region",
		YLabel:     labelGDP,
		Categories: regions,
		Series:     series,
	}, aggregate.RecordsTable(top)
}

func (b *Builder) regionContribution() (chart.Renderable, aggregate.Table) {
	totals := aggregate.Sum(b.data.InYear(b.latest).Records, aggregate.ByRegion, nil)
	slices := make([]chart.Slice, len(totals))
	for i, t := range totals {
		slices[i] = chart.Slice{Label: t.Group, Value: t.Value}
	}
	return chart.Figure{
		Kind:   chart.Pie,
		Title:  fmt.Sprintf("Regional GDP Contribution (%d)", b.latest),
		Slices: slices,
	}, aggregate.SharesTable(aggregate.ShareOfTotal(totals), dataset.ColRegion, "")
}

func (b *Builder) regionYearly() []aggregate.Point {
	return aggregate.SumByYear(b.data.Records, aggregate.ByRegion, nil)
}

func (b *Builder) regionStacked() (chart.Renderable, aggregate.Table) {
	points := b.regionYearly()
	cats, series := byYear(points, groupName)
	return chart.Figure{
		Kind:       chart.Bar,
		Title:      "Regional GDP Contribution Over Time",
		XLabel:     labelYear,
		YLabel:     labelGDP,
		Categories: cats,
		Series:     series,
		Stacked:    true,
	}, aggregate.PointsTable(points, dataset.ColRegion, "", dataset.ColValue)
}

func (b *Builder) regionTotalByYear() (chart.Renderable, aggregate.Table) {
	points := b.regionYearly()
	var opts []chart.Option
	for i, g := range aggregate.Groups(points) {
		cats, series := byYear(aggregate.OfGroup(points, g), groupName)
		series[0].Color = chart.SeriesColor(i)
		opts = append(opts, chart.Option{Label: g, Figure: chart.Figure{
			Kind:       chart.Bar,
			Title:      g,
			XLabel:     labelYear,
			YLabel:     labelGDP,
			Categories: cats,
			Series:     series,
		}})
	}
	title := fmt.Sprintf("Total GDP by Region per Year (%s)", b.yearSpan())
	return b.split(title, 3, opts), aggregate.PointsTable(points, dataset.ColRegion, "", dataset.ColValue)
}

func (b *Builder) regionTrends() (chart.Renderable, aggregate.Table) {
	points := b.regionYearly()
	return chart.Figure{
		Kind:     chart.Line,
		Title:    "Regional GDP Trends Over Time",
		XLabel:   labelYear,
		YLabel:   labelGDP,
		Series:   lines(points, groupName),
		YearAxis: true,
	}, aggregate.PointsTable(points, dataset.ColRegion, "", dataset.ColValue)
}

func (b *Builder) regionGrowth() []aggregate.Change {
	return aggregate.PercentChange(b.regionYearly())
}

func (b *Builder) regionGrowthOverTime() (chart.Renderable, aggregate.Table) {
	return b.growthLines("Regional GDP Growth Rate Over Time")
}

func (b *Builder) growthLines(title string) (chart.Renderable, aggregate.Table) {
	changes := b.regionGrowth()
	return chart.Figure{
		Kind:     chart.Line,
		Title:    title,
		XLabel:   labelYear,
		YLabel:   labelGrowth,
		Series:   changeLines(changes),
		YearAxis: true,
		RefLines: []chart.RefLine{chart.ZeroY},
	}, aggregate.ChangesTable(changes, dataset.ColRegion, "")
}

// growthRange resolves the configured comparison years against the data.
func (b *Builder) growthRange() (from, to int) {
	from, to = b.cfg.GrowthFrom, b.cfg.GrowthTo
	if from == 0 {
		from = b.data.FirstYear()
	}
	if to == 0 {
		to = b.latest
	}
	return from, to
}

func (b *Builder) regionGrowthRate() (chart.Renderable, aggregate.Table) {
	from, to := b.growthRange()
	var changes []aggregate.Change
	if from != to {
		changes = aggregate.GrowthBetween(
			aggregate.Sum(b.data.InYear(from).Records, aggregate.ByRegion, nil),
			aggregate.Sum(b.data.InYear(to).Records, aggregate.ByRegion, nil),
			from, to,
		)
	}

	cats := make([]string, len(changes))
	rates := make([]float64, len(changes))
	for i, c := range changes {
		cats[i], rates[i] = c.Group, c.Rate
	}
	lo, hi := chart.Bounds(rates)
	series := colored(cats, rates, func(i int) chart.Series {
		return chart.Series{Color: chart.RdYlGn.Map(rates[i], lo, hi, true)}
	})

	return chart.Figure{
		Kind:        chart.Bar,
		Title:       fmt.Sprintf("Regional GDP Growth Rate (%d vs %d)", to, from),
		XLabel:      "Region",
		YLabel:      labelGrowth,
		Categories:  cats,
		Series:      series,
		Stacked:     true,
		ValueFormat: "%.1f%%",
		RefLines:    []chart.RefLine{chart.ZeroY},
	}, aggregate.ChangesTable(changes, dataset.ColRegion, "")
}

func (b *Builder) provinceContribution() (chart.Renderable, aggregate.Table) {
	prov := b.data.ProvinceLevel()
	year := prov.LatestYear()
	totals := aggregate.Sum(prov.InYear(year).Records, aggregate.ByRegion, aggregate.ByLocation)

	var opts []chart.Option
	for i, region := range prov.Regions() {
		var cats []string
		var values []float64
		for _, t := range totals {
			if t.Group == region {
				cats = append(cats, t.Sub)
				values = append(values, t.Value)
			}
		}
		opts = append(opts, chart.Option{Label: region, Figure: chart.Figure{
			Kind:       chart.Bar,
			Title:      region,
			XLabel:     "Province/City",
			YLabel:     labelGDP,
			Categories: cats,
			Series:     []chart.Series{{Values: values, Color: chart.SeriesColor(i)}},
		}})
	}
	title := fmt.Sprintf("Provincial GDP Contribution by Region (%d)", year)
	return b.split(title, 2, opts), aggregate.TotalsTable(totals, dataset.ColRegion, dataset.ColLocationName, dataset.ColValue)
}
