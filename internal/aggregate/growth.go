package aggregate

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Change is the percent change of a group's value between PrevYear and Year.
type Change struct {
	Key
	PrevYear int
	Year     int
	Value    float64
	Rate     float64
}

// Pair labels the comparison, e.g. "2018-2019".
func (c Change) Pair() string {
	return fmt.Sprintf("%d-%d", c.PrevYear, c.Year)
}

// PercentChange computes (v[t]-v[t-1])/v[t-1]*100 along each group's years,
// where t-1 is the previous year present for that group. The first year of
// a group has no entry, and neither does a year following a zero value.
func PercentChange(points []Point) []Change {
	sorted := append([]Point(nil), points...)
	sortPoints(sorted)

	var changes []Change
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Key != cur.Key || prev.Value == 0 {
			continue
		}
		changes = append(changes, Change{
			Key:      cur.Key,
			PrevYear: prev.Year,
			Year:     cur.Year,
			Value:    cur.Value,
			Rate:     (cur.Value - prev.Value) / prev.Value * 100,
		})
	}
	return changes
}

// GrowthBetween compares each group's total in from against to. Groups
// missing either side, or with a zero base, are left out.
func GrowthBetween(from, to []Total, fromYear, toYear int) []Change {
	later := make(map[Key]float64, len(to))
	for _, t := range to {
		later[t.Key] = t.Value
	}

	var changes []Change
	for _, f := range from {
		v, ok := later[f.Key]
		if !ok || f.Value == 0 {
			continue
		}
		changes = append(changes, Change{
			Key:      f.Key,
			PrevYear: fromYear,
			Year:     toYear,
			Value:    v,
			Rate:     (v - f.Value) / f.Value * 100,
		})
	}
	return changes
}

// Stats summarises a group's growth rates.
type Stats struct {
	Key
	Mean   float64
	StdDev float64 // sample standard deviation, NaN below two rates
	N      int
}

// MeanStd groups changes by key and returns mean and sample std dev.
func MeanStd(changes []Change) []Stats {
	rates := make(map[Key][]float64)
	for _, c := range changes {
		rates[c.Key] = append(rates[c.Key], c.Rate)
	}

	out := make([]Stats, 0, len(rates))
	for k, xs := range rates {
		s := Stats{Key: k, N: len(xs), StdDev: math.NaN()}
		if len(xs) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
		} else {
			s.Mean = xs[0]
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.less(out[j].Key) })
	return out
}

// Leaders picks, per Group, the Sub with the highest mean growth.
func Leaders(stats []Stats) []Stats {
	best := make(map[string]Stats)
	var groups []string
	for _, s := range stats {
		if math.IsNaN(s.Mean) {
			continue
		}
		cur, ok := best[s.Group]
		if !ok {
			groups = append(groups, s.Group)
		}
		if !ok || s.Mean > cur.Mean {
			best[s.Group] = s
		}
	}
	sort.Strings(groups)

	out := make([]Stats, 0, len(groups))
	for _, g := range groups {
		out = append(out, best[g])
	}
	return out
}

// Gap compares a location's growth with its region's growth in one year.
type Gap struct {
	Region   string
	Location string
	Year     int
	Local    float64
	Regional float64
	Gap      float64
}

// GrowthGap joins location changes (Key{Region, Location}) with regional
// changes (Key{Region}) on region and year.
func GrowthGap(local, regional []Change) []Gap {
	type ry struct {
		region string
		year   int
	}
	reg := make(map[ry]float64, len(regional))
	for _, c := range regional {
		reg[ry{c.Group, c.Year}] = c.Rate
	}

	var gaps []Gap
	for _, c := range local {
		r, ok := reg[ry{c.Group, c.Year}]
		if !ok {
			continue
		}
		gaps = append(gaps, Gap{
			Region:   c.Group,
			Location: c.Sub,
			Year:     c.Year,
			Local:    c.Rate,
			Regional: r,
			Gap:      c.Rate - r,
		})
	}
	return gaps
}
