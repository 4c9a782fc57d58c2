package report

import (
	"math"
	"sort"
	"strconv"

	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"
)

const (
	labelGDP    = "GDP Value (Billions)"
	labelYear   = "Year"
	labelGrowth = "Growth Rate (%)"
	labelShare  = "Share (%)"
)

func span(from, to int) string {
	if from == to {
		return strconv.Itoa(from)
	}
	return strconv.Itoa(from) + "-" + strconv.Itoa(to)
}

// lines turns points into one line per name over the years, where name
// picks Group or Sub.
func lines(points []aggregate.Point, name func(aggregate.Key) string) []chart.Series {
	var out []chart.Series
	idx := make(map[string]int)
	for _, p := range points {
		n := name(p.Key)
		i, ok := idx[n]
		if !ok {
			i = len(out)
			idx[n] = i
			out = append(out, chart.Series{Name: n})
		}
		out[i].Points = append(out[i].Points, chart.XY{X: float64(p.Year), Y: p.Value})
	}
	return out
}

// changeLines is lines for growth rates.
func changeLines(changes []aggregate.Change) []chart.Series {
	points := make([]aggregate.Point, len(changes))
	for i, c := range changes {
		points[i] = aggregate.Point{Key: c.Key, Year: c.Year, Value: c.Rate}
	}
	return lines(points, groupName)
}

// byYear lays points out with years as categories and one bar series per
// name, where name picks Group or Sub.
func byYear(points []aggregate.Point, name func(aggregate.Key) string) ([]string, []chart.Series) {
	years := yearsOf(points)
	col := make(map[int]int, len(years))
	cats := make([]string, len(years))
	for i, y := range years {
		col[y] = i
		cats[i] = strconv.Itoa(y)
	}

	var series []chart.Series
	idx := make(map[string]int)
	for _, p := range points {
		n := name(p.Key)
		i, ok := idx[n]
		if !ok {
			i = len(series)
			idx[n] = i
			series = append(series, chart.Series{Name: n, Values: nanValues(len(years))})
		}
		series[i].Values[col[p.Year]] = p.Value
	}
	return cats, series
}

func yearsOf(points []aggregate.Point) []int {
	seen := make(map[int]bool)
	var years []int
	for _, p := range points {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	sort.Ints(years)
	return years
}

// colored gives each category its own bar color by stacking disjoint series,
// one per category.
func colored(cats []string, values []float64, style func(i int) chart.Series) []chart.Series {
	out := make([]chart.Series, len(cats))
	for i := range cats {
		s := style(i)
		s.Values = nanValues(len(cats))
		s.Values[i] = values[i]
		out[i] = s
	}
	return out
}

func nanValues(n int) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = math.NaN()
	}
	return vs
}

func groupName(k aggregate.Key) string { return k.Group }
func subName(k aggregate.Key) string { return k.Sub }
