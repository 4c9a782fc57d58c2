// Package aggregate holds the grouped arithmetic behind every chart: sums,
// top/bottom-N selections, year-over-year change, shares and pivots.
//
// Every function takes records or earlier aggregates and returns fresh
// values. Groups come out ordered by key (Group, then Sub) and years
// ascending.
package aggregate

import (
	"sort"

	"gdpdash/internal/dataset"
)

// Dim selects the grouping field of a record.
type Dim func(dataset.Record) string

var (
	ByRegion   Dim = func(r dataset.Record) string { return r.Region }
	ByIndustry Dim = func(r dataset.Record) string { return r.Industry }
	ByLocation Dim = func(r dataset.Record) string { return r.LocationName }
)

// Key identifies a one- or two-level group. Sub is empty for one level.
type Key struct {
	Group string
	Sub   string
}

func keyOf(r dataset.Record, group, sub Dim) Key {
	k := Key{Group: group(r)}
	if sub != nil {
		k.Sub = sub(r)
	}
	return k
}

func (k Key) less(o Key) bool {
	if k.Group != o.Group {
		return k.Group < o.Group
	}
	return k.Sub < o.Sub
}

// Total is a summed value for one group.
type Total struct {
	Key
	Value float64
}

// Point is a summed value for one group in one year.
type Point struct {
	Key
	Year  int
	Value float64
}

// Sum groups records by (group, sub) and sums Value. sub may be nil.
func Sum(records []dataset.Record, group, sub Dim) []Total {
	sums := make(map[Key]float64)
	for _, r := range records {
		sums[keyOf(r, group, sub)] += r.Value
	}

	totals := make([]Total, 0, len(sums))
	for k, v := range sums {
		totals = append(totals, Total{Key: k, Value: v})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Key.less(totals[j].Key) })
	return totals
}

// SumByYear groups records by (group, sub, start year) and sums Value.
func SumByYear(records []dataset.Record, group, sub Dim) []Point {
	type gy struct {
		Key
		year int
	}
	sums := make(map[gy]float64)
	for _, r := range records {
		sums[gy{keyOf(r, group, sub), r.StartYear}] += r.Value
	}

	points := make([]Point, 0, len(sums))
	for k, v := range sums {
		points = append(points, Point{Key: k.Key, Year: k.year, Value: v})
	}
	sortPoints(points)
	return points
}

func sortPoints(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Key != points[j].Key {
			return points[i].Key.less(points[j].Key)
		}
		return points[i].Year < points[j].Year
	})
}

// Groups returns the distinct Group names of the points, in key order.
func Groups(points []Point) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range points {
		if !seen[p.Group] {
			seen[p.Group] = true
			out = append(out, p.Group)
		}
	}
	sort.Strings(out)
	return out
}

// OfGroup keeps the points belonging to one Group.
func OfGroup(points []Point, group string) []Point {
	var out []Point
	for _, p := range points {
		if p.Group == group {
			out = append(out, p)
		}
	}
	return out
}

// OfYear keeps the points of one year.
func OfYear(points []Point, year int) []Point {
	var out []Point
	for _, p := range points {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out
}

// TopN returns, for every group, the n rows with the largest Value. Ties keep
// source order. Groups are emitted in ascending name order.
func TopN(records []dataset.Record, group Dim, n int) []dataset.Record {
	return selectN(records, group, n, func(a, b float64) bool { return a > b })
}

// BottomN is TopN with the smallest values first.
func BottomN(records []dataset.Record, group Dim, n int) []dataset.Record {
	return selectN(records, group, n, func(a, b float64) bool { return a < b })
}

func selectN(records []dataset.Record, group Dim, n int, before func(a, b float64) bool) []dataset.Record {
	if n <= 0 {
		return nil
	}
	byGroup := make(map[string][]dataset.Record)
	var names []string
	for _, r := range records {
		g := group(r)
		if _, ok := byGroup[g]; !ok {
			names = append(names, g)
		}
		byGroup[g] = append(byGroup[g], r)
	}
	sort.Strings(names)

	var out []dataset.Record
	for _, g := range names {
		rows := byGroup[g]
		sort.SliceStable(rows, func(i, j int) bool { return before(rows[i].Value, rows[j].Value) })
		if len(rows) > n {
			rows = rows[:n]
		}
		out = append(out, rows...)
	}
	return out
}
