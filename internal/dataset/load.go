package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	// ErrMissingColumns is the data-format failure: the header lacks a
	// required column, or there is no header at all.
	ErrMissingColumns = eris.New("dataset: required columns missing")
	// ErrUnreadable is the I/O failure: the file or sheet cannot be read.
	ErrUnreadable = eris.New("dataset: input unreadable")
)

// LoadStats counts what happened to the source rows.
type LoadStats struct {
	Read    int
	Kept    int
	Dropped int
}

// Load reads path (xlsx through excelize, csv through gota) and returns the
// cleaned table. sheet selects a worksheet; empty means the first one.
func Load(path, sheet string) (*Table, LoadStats, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	default:
		rows, err = readSheet(path, sheet)
	}
	if err != nil {
		return nil, LoadStats{}, err
	}

	table, stats, err := FromRows(rows)
	if err != nil {
		return nil, stats, eris.Wrapf(err, "dataset: %s", path)
	}

	zap.L().Info("dataset: loaded",
		zap.String("path", path),
		zap.Int("read", stats.Read),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped", stats.Dropped),
		zap.Strings("regions", table.Regions()),
		zap.Strings("industries", table.Industries()),
	)
	return table, stats, nil
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(ErrUnreadable, "open %s: %v", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, eris.Wrapf(ErrUnreadable, "%s has no worksheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, eris.Wrapf(ErrUnreadable, "read sheet %q of %s: %v", sheet, path, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrUnreadable, "open %s: %v", path, err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, eris.Wrapf(ErrUnreadable, "parse %s: %v", path, df.Err)
	}
	return df.Records(), nil
}

// FromRows cleans a header-first grid of cells. Rows whose Value or
// Start_Year cannot be read as a number are dropped.
func FromRows(rows [][]string) (*Table, LoadStats, error) {
	if len(rows) == 0 {
		return nil, LoadStats{}, eris.Wrap(ErrMissingColumns, "no header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, LoadStats{}, eris.Wrapf(ErrMissingColumns, "missing %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	stats := LoadStats{}
	records := make([]Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		stats.Read++

		value, ok := parseNumber(cell(row, ColValue))
		if !ok {
			stats.Dropped++
			zap.L().Debug("dataset: drop row, unusable value", zap.Int("row", n+2))
			continue
		}
		start, ok := parseYear(cell(row, ColStartYear))
		if !ok {
			stats.Dropped++
			zap.L().Debug("dataset: drop row, unusable start year", zap.Int("row", n+2))
			continue
		}
		end, _ := parseYear(cell(row, ColEndYear))

		records = append(records, Record{
			Region:       text(cell(row, ColRegion)),
			Industry:     text(cell(row, ColIndustry)),
			LocationType: text(cell(row, ColLocationType)),
			LocationName: text(cell(row, ColLocationName)),
			StartYear:    start,
			EndYear:      end,
			Value:        value,
		})
	}
	stats.Kept = len(records)
	return NewTable(records), stats, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// text normalises a label cell; gota renders missing strings as "NaN".
func text(s string) string {
	s = strings.TrimSpace(s)
	if s == "NaN" {
		return ""
	}
	return s
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseYear(s string) (int, bool) {
	v, ok := parseNumber(s)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}
