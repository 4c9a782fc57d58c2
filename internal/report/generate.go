package report

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"gdpdash/internal/config"
	"gdpdash/internal/dataset"
)

// ErrNoData is returned when the table holds no records to chart.
var ErrNoData = eris.New("report: no records to chart")

// Generate renders every chart not excluded by cfg and writes the chart
// pages, the dashboard, the workbook and, when configured, CSV frames.
// Existing files are overwritten. ctx is checked between charts.
func Generate(ctx context.Context, cfg *config.Config, data *dataset.Table) (Summary, error) {
	var sum Summary
	if data.Len() == 0 {
		return sum, ErrNoData
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return sum, eris.Wrapf(err, "report: output dir %s", cfg.OutputDir)
	}
	if cfg.CSVDir != "" {
		if err := os.MkdirAll(cfg.CSVDir, 0o755); err != nil {
			return sum, eris.Wrapf(err, "report: csv dir %s", cfg.CSVDir)
		}
	}

	now := time.Now()
	b := NewBuilder(cfg, data)
	var charts []Rendered
	for _, def := range Definitions() {
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "report: interrupted")
		}
		if cfg.Excluded(def.Key) {
			sum.Skipped = append(sum.Skipped, def.Key)
			zap.L().Debug("chart excluded", zap.String("chart", def.Key))
			continue
		}

		visual, frame := def.Build(b)
		out, err := visual.Render()
		if err != nil {
			return sum, eris.Wrapf(err, "report: render %s", def.Key)
		}
		c := Rendered{Key: def.Key, Tab: def.Tab, Output: out, Frame: frame}

		path := filepath.Join(cfg.OutputDir, def.Key+".html")
		view := pageView{Title: cfg.Title, Generated: stamp(now), Chart: c}
		if err := writeHTML(path, pageTmpl, view); err != nil {
			return sum, err
		}
		sum.add(Entry{Key: def.Key, Tab: def.Tab.Label, Title: out.Title, Panels: len(out.Panels), Rows: frame.Len(), File: path})
		zap.L().Debug("chart written", zap.String("chart", def.Key), zap.String("path", path), zap.Int("rows", frame.Len()))

		if cfg.CSVDir != "" {
			csvPath, ok, err := writeCSV(cfg.CSVDir, c)
			if err != nil {
				return sum, err
			}
			if ok {
				sum.Files = append(sum.Files, csvPath)
			}
		}
		charts = append(charts, c)
	}

	dash := filepath.Join(cfg.OutputDir, cfg.Dashboard)
	view := dashboardView{
		Title:     cfg.Title,
		Generated: stamp(now),
		Records:   data.Len(),
		Years:     span(data.FirstYear(), data.LatestYear()),
		Tabs:      groupByTab(charts),
	}
	if err := writeHTML(dash, dashboardTmpl, view); err != nil {
		return sum, err
	}
	sum.Dashboard = dash
	sum.Files = append(sum.Files, dash)

	if cfg.Workbook != "" {
		wb := filepath.Join(cfg.OutputDir, cfg.Workbook)
		if err := writeWorkbook(wb, charts); err != nil {
			return sum, err
		}
		sum.Workbook = wb
		sum.Files = append(sum.Files, wb)
	}

	zap.L().Info("report generated",
		zap.Int("charts", len(sum.Charts)),
		zap.Int("skipped", len(sum.Skipped)),
		zap.String("dashboard", dash))
	return sum, nil
}
