// Package dataset loads the regional/industry value sheet and keeps the
// cleaned rows in memory for the aggregations.
package dataset

import (
	"sort"
	"strings"
)

// Column names expected in the header row.
const (
	ColRegion       = "Region"
	ColIndustry     = "Industry"
	ColLocationType = "Location_Type"
	ColLocationName = "Location_Name"
	ColStartYear    = "Start_Year"
	ColEndYear      = "End_Year"
	ColValue        = "Value"
)

// RequiredColumns lists every header the loader insists on.
var RequiredColumns = []string{
	ColRegion, ColIndustry, ColLocationType, ColLocationName,
	ColStartYear, ColEndYear, ColValue,
}

// Record is one cleaned row. StartYear and Value are always usable;
// EndYear is 0 when the source cell could not be read as a year.
type Record struct {
	Region       string
	Industry     string
	LocationType string
	LocationName string
	StartYear    int
	EndYear      int
	Value        float64
}

// IsProvinceLevel reports whether the row describes a province or a city.
func (r Record) IsProvinceLevel() bool {
	t := strings.ToLower(r.LocationType)
	return strings.Contains(t, "province") || strings.Contains(t, "city")
}

// Table is the read-only record set produced by Load.
type Table struct {
	Records []Record
}

// NewTable wraps records without copying them.
func NewTable(records []Record) *Table {
	return &Table{Records: records}
}

func (t *Table) Len() int { return len(t.Records) }

// Years returns the distinct start years in ascending order.
func (t *Table) Years() []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, r := range t.Records {
		if !seen[r.StartYear] {
			seen[r.StartYear] = true
			years = append(years, r.StartYear)
		}
	}
	sort.Ints(years)
	return years
}

// LatestYear is the largest start year, or 0 for an empty table.
func (t *Table) LatestYear() int {
	years := t.Years()
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}

// FirstYear is the smallest start year, or 0 for an empty table.
func (t *Table) FirstYear() int {
	years := t.Years()
	if len(years) == 0 {
		return 0
	}
	return years[0]
}

// InYear returns the rows whose start year equals year, in source order.
func (t *Table) InYear(year int) *Table {
	return t.Filter(func(r Record) bool { return r.StartYear == year })
}

// ProvinceLevel keeps province and city rows only.
func (t *Table) ProvinceLevel() *Table {
	return t.Filter(Record.IsProvinceLevel)
}

// Filter returns a new table with the rows matching keep, in source order.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := make([]Record, 0, len(t.Records))
	for _, r := range t.Records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return NewTable(out)
}

// Regions returns distinct region names, sorted.
func (t *Table) Regions() []string {
	return t.distinct(func(r Record) string { return r.Region })
}

// Industries returns distinct industry names, sorted.
func (t *Table) Industries() []string {
	return t.distinct(func(r Record) string { return r.Industry })
}

func (t *Table) distinct(field func(Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records {
		v := field(r)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
