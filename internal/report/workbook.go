package report

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gdpdash/internal/aggregate"
)

const overviewSheet = "Overview"

// writeWorkbook saves every chart frame on its own sheet, after an overview
// sheet listing the charts.
func writeWorkbook(path string, charts []Rendered) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return eris.Wrap(err, "report: workbook style")
	}

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return eris.Wrap(err, "report: workbook overview")
	}
	overview := aggregate.Table{Columns: []string{"Chart", "Tab", "Title", "Rows"}}
	for _, c := range charts {
		overview.Rows = append(overview.Rows, []any{c.Key, c.Tab.Label, c.Output.Title, c.Frame.Len()})
	}
	if err := writeSheet(f, overviewSheet, overview, header); err != nil {
		return err
	}

	for _, c := range charts {
		name := sheetName(c.Key)
		if _, err := f.NewSheet(name); err != nil {
			return eris.Wrapf(err, "report: sheet %s", name)
		}
		if err := writeSheet(f, name, c.Frame, header); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	zap.L().Debug("workbook written", zap.String("path", path), zap.Int("sheets", len(charts)+1))
	return nil
}

func writeSheet(f *excelize.File, sheet string, t aggregate.Table, header int) error {
	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return eris.Wrapf(err, "report: %s header", sheet)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, 18); err != nil {
			return eris.Wrapf(err, "report: %s width", sheet)
		}
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
			return eris.Wrapf(err, "report: %s header style", sheet)
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			if x, ok := v.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return eris.Wrapf(err, "report: %s!%s", sheet, cell)
			}
		}
	}
	return nil
}

// sheetName fits a chart key into Excel's 31 character sheet name limit.
func sheetName(key string) string {
	if len(key) > 31 {
		return key[:31]
	}
	return key
}
