package aggregate

import (
	"math"
	"sort"
)

// Share is a child's value as a percentage of its parent's total.
type Share struct {
	Key
	Year    int
	Value   float64
	Total   float64
	Percent float64
}

// ShareOfParent divides each child point (Key{Region, Location}) by the
// parent point (Key{Region}) of the same year. Children without a parent, or
// whose parent total is zero, are dropped.
func ShareOfParent(children, parents []Point) []Share {
	type gy struct {
		group string
		year  int
	}
	totals := make(map[gy]float64, len(parents))
	for _, p := range parents {
		totals[gy{p.Group, p.Year}] = p.Value
	}

	var shares []Share
	for _, c := range children {
		total, ok := totals[gy{c.Group, c.Year}]
		if !ok || total == 0 {
			continue
		}
		shares = append(shares, Share{
			Key:     c.Key,
			Year:    c.Year,
			Value:   c.Value,
			Total:   total,
			Percent: c.Value / total * 100,
		})
	}
	return shares
}

// ShareOfTotal expresses each total as a percentage of their sum. A zero sum
// yields no shares.
func ShareOfTotal(totals []Total) []Share {
	var sum float64
	for _, t := range totals {
		sum += t.Value
	}
	if sum == 0 {
		return nil
	}
	shares := make([]Share, 0, len(totals))
	for _, t := range totals {
		shares = append(shares, Share{Key: t.Key, Value: t.Value, Total: sum, Percent: t.Value / sum * 100})
	}
	return shares
}

// Matrix is a dense Rows x Cols grid. Cells[r][c] is NaN where a pivot
// left a combination absent.
type Matrix struct {
	Rows  []string
	Cols  []string
	Cells [][]float64
}

// At returns the cell for a row and column label, NaN when absent.
func (m Matrix) At(row, col string) float64 {
	for r, name := range m.Rows {
		if name != row {
			continue
		}
		for c, cn := range m.Cols {
			if cn == col {
				return m.Cells[r][c]
			}
		}
	}
	return math.NaN()
}

// Pivot reshapes two-level totals (unique keys, as returned by Sum) into
// Group x Sub, using fill for combinations missing from the input.
func Pivot(totals []Total, fill float64) Matrix {
	rows, cols := labels(totals, func(t Total) (string, string) { return t.Group, t.Sub })
	m := newMatrix(rows, cols, fill)
	ri, ci := positions(rows), positions(cols)
	for _, t := range totals {
		m.Cells[ri[t.Group]][ci[t.Sub]] = t.Value
	}
	return m
}

// PivotChanges reshapes growth rates into Group x year pair. Absent
// combinations stay NaN.
func PivotChanges(changes []Change) Matrix {
	rows, cols := labels(changes, func(c Change) (string, string) { return c.Group, c.Pair() })
	m := newMatrix(rows, cols, math.NaN())
	ri, ci := positions(rows), positions(cols)
	for _, c := range changes {
		m.Cells[ri[c.Group]][ci[c.Pair()]] = c.Rate
	}
	return m
}

func labels[T any](items []T, split func(T) (string, string)) ([]string, []string) {
	seenR, seenC := make(map[string]bool), make(map[string]bool)
	var rows, cols []string
	for _, it := range items {
		r, c := split(it)
		if !seenR[r] {
			seenR[r] = true
			rows = append(rows, r)
		}
		if !seenC[c] {
			seenC[c] = true
			cols = append(cols, c)
		}
	}
	sort.Strings(rows)
	sort.Strings(cols)
	return rows, cols
}

func positions(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return idx
}

func newMatrix(rows, cols []string, fill float64) Matrix {
	cells := make([][]float64, len(rows))
	for r := range cells {
		cells[r] = make([]float64, len(cols))
		for c := range cells[r] {
			cells[r][c] = fill
		}
	}
	return Matrix{Rows: rows, Cols: cols, Cells: cells}
}
