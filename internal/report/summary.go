package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Entry describes one written chart.
type Entry struct {
	Key    string
	Tab    string
	Title  string
	Panels int
	Rows   int
	File   string
}

// Summary is what a Generate run produced.
type Summary struct {
	Charts    []Entry
	Skipped   []string
	Files     []string
	Dashboard string
	Workbook  string
}

func (s *Summary) add(e Entry) {
	s.Charts = append(s.Charts, e)
	s.Files = append(s.Files, e.File)
}

// Print writes the chart table and the file list to w.
func (s Summary) Print(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tab", "Chart", "Panels", "Rows"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, e := range s.Charts {
		table.Append([]string{e.Tab, e.Key, strconv.Itoa(e.Panels), strconv.Itoa(e.Rows)})
	}
	table.Render()

	bold := color.New(color.Bold)
	bold.Fprintf(w, "\n📁 %d charts written", len(s.Charts))
	if len(s.Skipped) > 0 {
		color.New(color.FgYellow).Fprintf(w, ", %d excluded", len(s.Skipped))
	}
	fmt.Fprintln(w)
	if s.Dashboard != "" {
		fmt.Fprintf(w, "   - %s\n", color.GreenString(s.Dashboard))
	}
	if s.Workbook != "" {
		fmt.Fprintf(w, "   - %s\n", color.GreenString(s.Workbook))
	}
}
