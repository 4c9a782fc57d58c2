package aggregate

import (
	"fmt"
	"math"
	"strconv"

	"gdpdash/internal/dataset"
)

// Table is the flat frame behind a chart, kept for workbook and CSV export.
// Cells hold string, int or float64; NaN floats mark absent values.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Strings renders the header and rows as text. Absent values are empty.
func (t Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = cellText(v)
		}
		out = append(out, line)
	}
	return out
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// RecordsTable lists records in their given order.
func RecordsTable(records []dataset.Record) Table {
	t := Table{Columns: []string{
		dataset.ColRegion, dataset.ColIndustry, dataset.ColLocationType,
		dataset.ColLocationName, dataset.ColStartYear, dataset.ColValue,
	}}
	for _, r := range records {
		t.Rows = append(t.Rows, []any{r.Region, r.Industry, r.LocationType, r.LocationName, r.StartYear, r.Value})
	}
	return t
}

// TotalsTable names the key columns; sub may be empty for one-level keys.
func TotalsTable(totals []Total, group, sub, value string) Table {
	t := Table{Columns: keyColumns(group, sub, value)}
	for _, x := range totals {
		t.Rows = append(t.Rows, keyRow(x.Key, sub != "", x.Value))
	}
	return t
}

// PointsTable adds a year column after the key columns.
func PointsTable(points []Point, group, sub, value string) Table {
	t := Table{Columns: keyColumns(group, sub, dataset.ColStartYear, value)}
	for _, p := range points {
		t.Rows = append(t.Rows, keyRow(p.Key, sub != "", p.Year, p.Value))
	}
	return t
}

// ChangesTable lists growth rates with both years of the comparison.
func ChangesTable(changes []Change, group, sub string) Table {
	t := Table{Columns: keyColumns(group, sub, "Prev_Year", dataset.ColStartYear, dataset.ColValue, "Growth_Rate")}
	for _, c := range changes {
		t.Rows = append(t.Rows, keyRow(c.Key, sub != "", c.PrevYear, c.Year, c.Value, c.Rate))
	}
	return t
}

// StatsTable lists mean and standard deviation of growth.
func StatsTable(stats []Stats, group, sub string) Table {
	t := Table{Columns: keyColumns(group, sub, "Avg_Growth", "Growth_Volatility", "Periods")}
	for _, s := range stats {
		t.Rows = append(t.Rows, keyRow(s.Key, sub != "", s.Mean, s.StdDev, s.N))
	}
	return t
}

// SharesTable lists child shares of their parent total.
func SharesTable(shares []Share, group, sub string) Table {
	t := Table{Columns: keyColumns(group, sub, dataset.ColStartYear, dataset.ColValue, "Parent_Total", "Share_Percent")}
	for _, s := range shares {
		t.Rows = append(t.Rows, keyRow(s.Key, sub != "", s.Year, s.Value, s.Total, s.Percent))
	}
	return t
}

// GapsTable lists local against regional growth.
func GapsTable(gaps []Gap) Table {
	t := Table{Columns: []string{
		dataset.ColRegion, dataset.ColLocationName, dataset.ColStartYear,
		"Province_Growth", "Regional_Growth", "Growth_Gap",
	}}
	for _, g := range gaps {
		t.Rows = append(t.Rows, []any{g.Region, g.Location, g.Year, g.Local, g.Regional, g.Gap})
	}
	return t
}

// MatrixTable flattens a matrix to one row per matrix row, with the row
// label under corner.
func MatrixTable(m Matrix, corner string) Table {
	t := Table{Columns: append([]string{corner}, m.Cols...)}
	for r, name := range m.Rows {
		row := make([]any, 0, len(m.Cols)+1)
		row = append(row, name)
		for _, v := range m.Cells[r] {
			row = append(row, v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func keyColumns(group, sub string, rest ...string) []string {
	cols := []string{group}
	if sub != "" {
		cols = append(cols, sub)
	}
	return append(cols, rest...)
}

func keyRow(k Key, withSub bool, rest ...any) []any {
	row := []any{k.Group}
	if withSub {
		row = append(row, k.Sub)
	}
	return append(row, rest...)
}
