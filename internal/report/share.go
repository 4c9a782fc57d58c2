package report

import (
	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"
	"gdpdash/internal/dataset"
)

// provinceShares divides each province's yearly total by its region's
// yearly total over all rows.
func (b *Builder) provinceShares() []aggregate.Share {
	children := aggregate.SumByYear(b.data.ProvinceLevel().Records, aggregate.ByRegion, aggregate.ByLocation)
	return aggregate.ShareOfParent(children, b.regionYearly())
}

func sharePoints(shares []aggregate.Share) []aggregate.Point {
	points := make([]aggregate.Point, len(shares))
	for i, s := range shares {
		points[i] = aggregate.Point{Key: s.Key, Year: s.Year, Value: s.Percent}
	}
	return points
}

func (b *Builder) provinceShareTimeline() (chart.Renderable, aggregate.Table) {
	shares := b.provinceShares()
	points := sharePoints(shares)
	var opts []chart.Option
	for _, region := range aggregate.Groups(points) {
		cats, series := byYear(aggregate.OfGroup(points, region), subName)
		opts = append(opts, chart.Option{Label: region, Figure: chart.Figure{
			Kind:       chart.Bar,
			Title:      region,
			XLabel:     labelYear,
			YLabel:     labelShare,
			Categories: cats,
			Series:     series,
			Stacked:    true,
		}})
	}
	title := "Province GDP Share Within Region (" + b.yearSpan() + ")"
	return b.split(title, 2, opts), aggregate.SharesTable(shares, dataset.ColRegion, dataset.ColLocationName)
}

func (b *Builder) shareChange() (chart.Renderable, aggregate.Table) {
	shares := b.provinceShares()
	points := sharePoints(shares)
	var opts []chart.Option
	for _, region := range aggregate.Groups(points) {
		series := lines(aggregate.OfGroup(points, region), subName)
		opts = append(opts, chart.Option{Label: region, Figure: chart.Figure{
			Kind:     chart.Line,
			Title:    region,
			XLabel:   labelYear,
			YLabel:   labelShare,
			Series:   series,
			YearAxis: true,
		}})
	}
	return b.split("Change in Province Share Over Time", 2, opts),
		aggregate.SharesTable(shares, dataset.ColRegion, dataset.ColLocationName)
}

func (b *Builder) growthGap() (chart.Renderable, aggregate.Table) {
	local := aggregate.PercentChange(aggregate.SumByYear(b.data.ProvinceLevel().Records, aggregate.ByRegion, aggregate.ByLocation))
	gaps := aggregate.GrowthGap(local, b.regionGrowth())

	var series []chart.Series
	idx := make(map[string]int)
	for _, g := range gaps {
		i, ok := idx[g.Region]
		if !ok {
			i = len(series)
			idx[g.Region] = i
			series = append(series, chart.Series{Name: g.Region})
		}
		size := g.Gap
		if size < 0 {
			size = -size
		}
		series[i].Points = append(series[i].Points, chart.XY{X: g.Regional, Y: g.Local, Size: size})
	}

	return chart.Figure{
		Kind:     chart.Scatter,
		Title:    "Province vs Regional Growth Comparison",
		XLabel:   "Regional Growth Rate (%)",
		YLabel:   "Provincial Growth Rate (%)",
		Series:   series,
		RefLines: []chart.RefLine{chart.Diagonal},
	}, aggregate.GapsTable(gaps)
}
