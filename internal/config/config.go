// Package config resolves run settings from defaults, an optional YAML file,
// .env and the process environment. CLI flags are applied last by main.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Variant selects how group-split charts are presented.
type Variant string

const (
	// VariantFacet draws one small panel per group.
	VariantFacet Variant = "facet"
	// VariantDropdown shows one group at a time behind a selector.
	VariantDropdown Variant = "dropdown"
)

// Config holds the settings of one report run.
type Config struct {
	// Input is the spreadsheet (.xlsx or .csv) to load.
	Input string `yaml:"input"`
	// Sheet names the worksheet; empty means the first sheet.
	Sheet string `yaml:"sheet"`
	// OutputDir receives every generated file.
	OutputDir string `yaml:"output_dir"`
	// Dashboard is the file name of the combined tabbed page.
	Dashboard string  `yaml:"dashboard"`
	Title     string  `yaml:"title"`
	Variant   Variant `yaml:"variant"`
	// TopIndustries is N for the per-region top industries chart.
	TopIndustries int `yaml:"top_industries"`
	// TopRegions is N for the per-industry top/lowest regions charts.
	TopRegions int `yaml:"top_regions"`
	// GrowthFrom and GrowthTo bound the region growth rate chart; zero means
	// the first and last year in the data.
	GrowthFrom int `yaml:"growth_from"`
	GrowthTo   int `yaml:"growth_to"`
	// Workbook is the aggregates workbook name; empty disables it.
	Workbook string `yaml:"workbook"`
	// CSVDir, when set, receives one CSV per chart.
	CSVDir   string   `yaml:"csv_dir"`
	Exclude  []string `yaml:"exclude"`
	LogLevel string   `yaml:"log_level"`
}

// Environment variable names.
const (
	EnvInput     = "GDPDASH_INPUT"
	EnvSheet     = "GDPDASH_SHEET"
	EnvOutputDir = "GDPDASH_OUTPUT_DIR"
	EnvVariant   = "GDPDASH_VARIANT"
	EnvLogLevel  = "GDPDASH_LOG_LEVEL"
	EnvCSVDir    = "GDPDASH_CSV_DIR"
	EnvTopN      = "GDPDASH_TOP_REGIONS"
)

var (
	ErrUnknownVariant = eris.New("config: variant must be facet or dropdown")
	ErrMissingInput   = eris.New("config: input path is required")
	ErrTopN           = eris.New("config: top-N values must be at least 1")
	ErrGrowthRange    = eris.New("config: growth_from must precede growth_to")
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Input:         "cleaned_data.xlsx",
		OutputDir:     ".",
		Dashboard:     "gdp_dashboard.html",
		Title:         "GDP Analysis Dashboard",
		Variant:       VariantFacet,
		TopIndustries: 3,
		TopRegions:    10,
		Workbook:      "gdp_aggregates.xlsx",
		LogLevel:      "info",
	}
}

// Load layers the YAML file at path (skipped when path is empty), then .env
// and the environment, over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "config: read %s", path)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, eris.Wrapf(err, "config: parse %s", path)
		}
	}

	// A missing .env is normal; the process environment still applies.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Input, EnvInput)
	setString(&c.Sheet, EnvSheet)
	setString(&c.OutputDir, EnvOutputDir)
	setString(&c.LogLevel, EnvLogLevel)
	setString(&c.CSVDir, EnvCSVDir)
	if v, ok := os.LookupEnv(EnvVariant); ok && v != "" {
		c.Variant = Variant(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := os.LookupEnv(EnvTopN); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return eris.Wrapf(err, "config: %s", EnvTopN)
		}
		c.TopRegions = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks the settings a run depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return ErrMissingInput
	}
	switch c.Variant {
	case VariantFacet, VariantDropdown:
	default:
		return eris.Wrapf(ErrUnknownVariant, "got %q", c.Variant)
	}
	if c.TopIndustries < 1 || c.TopRegions < 1 {
		return ErrTopN
	}
	if c.GrowthFrom != 0 && c.GrowthTo != 0 && c.GrowthFrom >= c.GrowthTo {
		return ErrGrowthRange
	}
	return nil
}

// Excluded reports whether the chart key was switched off.
func (c *Config) Excluded(key string) bool {
	for _, k := range c.Exclude {
		if k == key {
			return true
		}
	}
	return false
}
