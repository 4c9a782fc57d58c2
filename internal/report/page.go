package report

import (
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"gdpdash/internal/aggregate"
	"gdpdash/internal/chart"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	pageTmpl      = template.Must(template.ParseFS(templateFS, "templates/page.html", "templates/base.html"))
	dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html", "templates/base.html"))
)

// Rendered is a chart ready to be placed on a page.
type Rendered struct {
	Key    string
	Tab    Tab
	Output chart.Output
	Frame  aggregate.Table
}

// Layout names the output layout for the templates.
func (r Rendered) Layout() string {
	switch r.Output.Layout {
	case chart.Select:
		return "select"
	case chart.Grid:
		return "grid"
	}
	return "single"
}

type tabView struct {
	Tab
	Charts []Rendered
}

type pageView struct {
	Title     string
	Generated string
	Chart     Rendered
}

type dashboardView struct {
	Title     string
	Generated string
	Records   int
	Years     string
	Tabs      []tabView
}

func stamp(t time.Time) string { return t.Format("2006-01-02 15:04") }

// writeHTML executes tmpl into path, replacing any existing file.
func writeHTML(path string, tmpl *template.Template, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return eris.Wrapf(err, "report: render %s", filepath.Base(path))
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "report: close %s", path)
	}
	return nil
}

// groupByTab orders charts under their tabs, leaving out empty tabs.
func groupByTab(charts []Rendered) []tabView {
	var views []tabView
	for _, t := range Tabs {
		v := tabView{Tab: t}
		for _, c := range charts {
			if c.Tab.ID == t.ID {
				v.Charts = append(v.Charts, c)
			}
		}
		if len(v.Charts) > 0 {
			views = append(views, v)
		}
	}
	return views
}
