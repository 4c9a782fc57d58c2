package report

import (
	"fmt"
	"strconv"

	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"
	"gdpdash/internal/config"
	"gdpdash/internal/dataset"
)

func (b *Builder) industryTopRegions() (chart.Renderable, aggregate.Table) {
	rows := aggregate.TopN(b.data.InYear(b.latest).Records, aggregate.ByIndustry, b.cfg.TopRegions)
	return b.rankedRegions(fmt.Sprintf("Top %d Regions by Industry GDP (%d)", b.cfg.TopRegions, b.latest), rows)
}

func (b *Builder) industryLowestRegions() (chart.Renderable, aggregate.Table) {
	rows := aggregate.BottomN(b.data.InYear(b.latest).Records, aggregate.ByIndustry, b.cfg.TopRegions)
	return b.rankedRegions(fmt.Sprintf("Lowest %d Regions by Industry GDP (%d)", b.cfg.TopRegions, b.latest), rows)
}

// rankedRegions draws one horizontal bar panel per industry, first row on top.
func (b *Builder) rankedRegions(title string, rows []dataset.Record) (chart.Renderable, aggregate.Table) {
	var opts []chart.Option
	for i, ind := range dataset.NewTable(rows).Industries() {
		var group []dataset.Record
		for _, r := range rows {
			if r.Industry == ind {
				group = append(group, r)
			}
		}
		labels := rowLabels(group)
		cats := make([]string, len(group))
		values := make([]float64, len(group))
		for j, r := range group {
			k := len(group) - 1 - j
			cats[k], values[k] = labels[j], r.Value
		}
		opts = append(opts, chart.Option{Label: ind, Figure: chart.Figure{
			Kind:       chart.Bar,
			Title:      ind,
			XLabel:     labelGDP,
			YLabel:     "Region",
			Categories: cats,
			Series:     []chart.Series{{Values: values, Color: chart.SeriesColor(i)}},
			Horizontal: true,
		}})
	}
	return b.split(title, 2, opts), aggregate.RecordsTable(rows)
}

// rowLabels names rows by region, adding the location when a region
// repeats within the group.
func rowLabels(rows []dataset.Record) []string {
	count := make(map[string]int)
	for _, r := range rows {
		count[r.Region]++
	}
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Region
		if count[r.Region] > 1 && r.LocationName != "" {
			labels[i] = r.Region + " / " + r.LocationName
		}
	}
	return labels
}

func (b *Builder) industryYearly() []aggregate.Point {
	return aggregate.SumByYear(b.data.Records, aggregate.ByIndustry, nil)
}

func industryPie(title string, points []aggregate.Point) chart.Figure {
	f := chart.Figure{Kind: chart.Pie, Title: title}
	for _, p := range points {
		f.Slices = append(f.Slices, chart.Slice{Label: p.Group, Value: p.Value})
	}
	return f
}

func industryBars(title string, points []aggregate.Point) chart.Figure {
	f := chart.Figure{Kind: chart.Bar, Title: title, XLabel: "Industry", YLabel: labelGDP}
	values := make([]float64, len(points))
	for i, p := range points {
		f.Categories = append(f.Categories, p.Group)
		values[i] = p.Value
	}
	f.Series = colored(f.Categories, values, func(i int) chart.Series {
		return chart.Series{Color: chart.SeriesColor(i)}
	})
	f.Stacked = true
	return f
}

func (b *Builder) nationalComposition() (chart.Renderable, aggregate.Table) {
	points := b.industryYearly()
	frame := aggregate.PointsTable(points, dataset.ColIndustry, "", dataset.ColValue)
	if b.cfg.Variant == config.VariantDropdown {
		var opts []chart.Option
		for _, y := range yearsOf(points) {
			opts = append(opts, chart.Option{
				Label:  strconv.Itoa(y),
				Figure: industryBars(fmt.Sprintf("National GDP Composition by Industry (%d)", y), aggregate.OfYear(points, y)),
			})
		}
		return chart.Dropdown{Title: "National GDP Composition by Industry", Options: opts}, frame
	}
	title := fmt.Sprintf("National GDP Composition by Industry (%d)", b.latest)
	return industryPie(title, aggregate.OfYear(points, b.latest)), frame
}

func (b *Builder) industryStacked() (chart.Renderable, aggregate.Table) {
	points := b.industryYearly()
	cats, series := byYear(points, groupName)
	return chart.Figure{
		Kind:       chart.Bar,
		Title:      fmt.Sprintf("Industry GDP Breakdown Over Time (%s)", b.yearSpan()),
		XLabel:     labelYear,
		YLabel:     labelGDP,
		Categories: cats,
		Series:     series,
		Stacked:    true,
	}, aggregate.PointsTable(points, dataset.ColIndustry, "", dataset.ColValue)
}

func (b *Builder) industryDonuts() (chart.Renderable, aggregate.Table) {
	points := b.industryYearly()
	var opts []chart.Option
	for _, y := range yearsOf(points) {
		opts = append(opts, chart.Option{
			Label:  strconv.Itoa(y),
			Figure: industryPie(fmt.Sprintf("Year %d", y), aggregate.OfYear(points, y)),
		})
	}
	return b.split("Industry GDP Composition by Year", 3, opts),
		aggregate.PointsTable(points, dataset.ColIndustry, "", dataset.ColValue)
}

func (b *Builder) industryTrends() (chart.Renderable, aggregate.Table) {
	points := b.industryYearly()
	return chart.Figure{
		Kind:     chart.Line,
		Title:    "GDP Trends by Industry Over Time",
		XLabel:   labelYear,
		YLabel:   labelGDP,
		Series:   lines(points, groupName),
		YearAxis: true,
	}, aggregate.PointsTable(points, dataset.ColIndustry, "", dataset.ColValue)
}

func (b *Builder) regionIndustryHeatmap() (chart.Renderable, aggregate.Table) {
	m := aggregate.Pivot(aggregate.Sum(b.data.InYear(b.latest).Records, aggregate.ByRegion, aggregate.ByIndustry), 0)
	return chart.Figure{
		Kind:        chart.Heatmap,
		Title:       fmt.Sprintf("GDP Heatmap: Regions vs Industries (%d)", b.latest),
		XLabel:      "Industry",
		YLabel:      "Region",
		Matrix:      &m,
		Scale:       chart.Viridis,
		ValueFormat: "%.0f",
		Height:      800,
	}, aggregate.MatrixTable(m, dataset.ColRegion)
}
