package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gdpdash/internal/config"
	"gdpdash/internal/dataset"
	"gdpdash/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

type flags struct {
	config   string
	input    string
	sheet    string
	out      string
	variant  string
	workbook string
	csvDir   string
	verbose  bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "gdpdash",
		Short:         "Build the regional GDP dashboard from a spreadsheet",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()
			undo := zap.ReplaceGlobals(logger)
			defer undo()

			return run(cmd.Context(), cfg, stdout)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.input, "input", "i", "", "input spreadsheet (.xlsx or .csv)")
	fs.StringVar(&f.sheet, "sheet", "", "worksheet name (default: first sheet)")
	fs.StringVarP(&f.out, "out", "o", "", "output directory")
	fs.StringVar(&f.variant, "variant", "", "group chart presentation: facet or dropdown")
	fs.StringVar(&f.workbook, "workbook", "", "aggregates workbook file name")
	fs.StringVar(&f.csvDir, "csv-dir", "", "directory for per-chart CSV frames")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// apply overrides cfg with the flags given on the command line.
func (f flags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Input = f.input
	}
	if changed("sheet") {
		cfg.Sheet = f.sheet
	}
	if changed("out") {
		cfg.OutputDir = f.out
	}
	if changed("variant") {
		cfg.Variant = config.Variant(strings.ToLower(f.variant))
	}
	if changed("workbook") {
		cfg.Workbook = f.workbook
	}
	if changed("csv-dir") {
		cfg.CSVDir = f.csvDir
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, eris.Wrapf(err, "log level %q", level)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = lvl > zapcore.DebugLevel
	return zc.Build()
}

func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	title := color.New(color.Bold, color.FgCyan)
	title.Fprintf(stdout, "📊 %s\n", strings.ToUpper(cfg.Title))
	fmt.Fprintf(stdout, "Reading %s...\n", cfg.Input)

	data, stats, err := dataset.Load(cfg.Input, cfg.Sheet)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "📥 Data loaded: %d records (%d dropped), %d regions, %d industries\n",
		stats.Kept, stats.Dropped, len(data.Regions()), len(data.Industries()))

	fmt.Fprintf(stdout, "🎨 Rendering charts (%s)...\n", cfg.Variant)
	sum, err := report.Generate(ctx, cfg, data)
	if err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Fprintln(stdout, "\n✅ DASHBOARD COMPLETE")
	sum.Print(stdout)
	return nil
}
