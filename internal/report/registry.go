// Package report assembles the dashboard: it runs every registered chart
// definition over the loaded table, writes one page per chart plus the
// tabbed dashboard, and exports the frames behind the charts.
package report

import (
	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"
	"gdpdash/internal/config"
	"gdpdash/internal/dataset"
)

// Tab groups charts on the dashboard.
type Tab struct {
	ID          string
	Label       string
	Description string
}

var (
	TabRegion = Tab{
		ID:          "RegionTab",
		Label:       "By Region",
		Description: "Regional analysis showing GDP distribution, trends, and provincial contributions across different regions.",
	}
	TabIndustry = Tab{
		ID:          "IndustryTab",
		Label:       "By Industry",
		Description: "Industry-focused analysis showing sectoral performance, regional leaders, and composition changes over time.",
	}
	TabGrowth = Tab{
		ID:          "GrowthTab",
		Label:       "Growth Analysis",
		Description: "Growth rate analysis focusing on year-over-year changes, regional performance, and industry leaders.",
	}
	TabShare = Tab{
		ID:          "ShareTab",
		Label:       "Percent Share",
		Description: "Provincial share analysis showing how provinces contribute to regional GDP and growth patterns.",
	}
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabRegion, TabIndustry, TabGrowth, TabShare}

// Definition registers one chart. Build returns the visual and the frame
// it was drawn from.
type Definition struct {
	Key   string
	Tab   Tab
	Build func(b *Builder) (chart.Renderable, aggregate.Table)
}

// Definitions returns every chart in dashboard order.
func Definitions() []Definition {
	return []Definition{
		{Key: "region_top_industries", Tab: TabRegion, Build: (*Builder).regionTopIndustries},
		{Key: "region_gdp_contribution", Tab: TabRegion, Build: (*Builder).regionContribution},
		{Key: "region_gdp_stacked", Tab: TabRegion, Build: (*Builder).regionStacked},
		{Key: "region_total_by_year", Tab: TabRegion, Build: (*Builder).regionTotalByYear},
		{Key: "region_gdp_trends", Tab: TabRegion, Build: (*Builder).regionTrends},
		{Key: "region_growth_over_time", Tab: TabRegion, Build: (*Builder).regionGrowthOverTime},
		{Key: "region_growth_rate", Tab: TabRegion, Build: (*Builder).regionGrowthRate},
		{Key: "province_contribution", Tab: TabRegion, Build: (*Builder).provinceContribution},

		{Key: "industry_top_regions", Tab: TabIndustry, Build: (*Builder).industryTopRegions},
		{Key: "industry_lowest_regions", Tab: TabIndustry, Build: (*Builder).industryLowestRegions},
		{Key: "national_industry_composition", Tab: TabIndustry, Build: (*Builder).nationalComposition},
		{Key: "industry_breakdown_stacked", Tab: TabIndustry, Build: (*Builder).industryStacked},
		{Key: "industry_breakdown_donut", Tab: TabIndustry, Build: (*Builder).industryDonuts},
		{Key: "industry_trends", Tab: TabIndustry, Build: (*Builder).industryTrends},
		{Key: "regions_industries_heatmap", Tab: TabIndustry, Build: (*Builder).regionIndustryHeatmap},

		{Key: "two_year_growth", Tab: TabGrowth, Build: (*Builder).twoYearGrowth},
		{Key: "growth_trends", Tab: TabGrowth, Build: (*Builder).growthTrends},
		{Key: "fastest_growing_regions", Tab: TabGrowth, Build: (*Builder).fastestGrowing},
		{Key: "industry_growth_leaders", Tab: TabGrowth, Build: (*Builder).industryGrowthLeaders},
		{Key: "growth_volatility", Tab: TabGrowth, Build: (*Builder).growthVolatility},

		{Key: "province_share_timeline", Tab: TabShare, Build: (*Builder).provinceShareTimeline},
		{Key: "share_change_over_time", Tab: TabShare, Build: (*Builder).shareChange},
		{Key: "growth_gap_analysis", Tab: TabShare, Build: (*Builder).growthGap},
	}
}

// Builder carries the table and settings every definition reads.
type Builder struct {
	cfg    *config.Config
	data   *dataset.Table
	latest int
}

// NewBuilder prepares definitions to run over data.
func NewBuilder(cfg *config.Config, data *dataset.Table) *Builder {
	return &Builder{cfg: cfg, data: data, latest: data.LatestYear()}
}

// split presents one figure per group as facets or a dropdown, following
// the configured variant.
func (b *Builder) split(title string, cols int, opts []chart.Option) chart.Renderable {
	if b.cfg.Variant == config.VariantDropdown {
		return chart.Dropdown{Title: title, Options: opts}
	}
	panels := make([]chart.Figure, len(opts))
	for i, o := range opts {
		panels[i] = o.Figure
	}
	return chart.Facets{Title: title, Cols: cols, Panels: panels}
}

// yearSpan labels a range of years, e.g. "2018-2023".
func (b *Builder) yearSpan() string {
	return span(b.data.FirstYear(), b.latest)
}
