package report

import (
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rotisserie/eris"
)

// writeCSV exports a chart frame as <dir>/<key>.csv. Empty frames are
// skipped and reported as not written.
func writeCSV(dir string, c Rendered) (string, bool, error) {
	if c.Frame.Len() == 0 {
		return "", false, nil
	}
	df := dataframe.LoadRecords(c.Frame.Strings(),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return "", false, eris.Wrapf(df.Err, "report: frame %s", c.Key)
	}

	path := filepath.Join(dir, c.Key+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", false, eris.Wrapf(err, "report: create %s", path)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return "", false, eris.Wrapf(err, "report: write %s", path)
	}
	if err := f.Close(); err != nil {
		return "", false, eris.Wrapf(err, "report: close %s", path)
	}
	return path, true, nil
}
