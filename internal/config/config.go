// Package config defines the job configuration and its loading hooks.
//
// Conventions:
// - Keys are flat snake_case so env vars map onto them one to one.
// - New() returns the defaults; Load layers file and env on top.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// CorpusDir is the directory holding the *-flights.json files.
	CorpusDir string `koanf:"corpus_dir"`

	// TopN caps the ranked destination list.
	TopN int `koanf:"top_n"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`

	// XLSXFile, when set, receives the summary workbook after the run.
	XLSXFile string `koanf:"xlsx_file"`

	// Generate synthesizes a fresh corpus into CorpusDir before the pass.
	Generate bool `koanf:"generate"`

	// Generator parameters.
	GenRecordsPerFile int     `koanf:"gen_records_per_file"`
	GenMinCities      int     `koanf:"gen_min_cities"`
	GenMaxCities      int     `koanf:"gen_max_cities"`
	GenDirtyRatio     float64 `koanf:"gen_dirty_ratio"`
	GenSeed           int64   `koanf:"gen_seed"`
	GenYearToken      string  `koanf:"gen_year_token"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		CorpusDir:         "/tmp/flights",
		TopN:              25,
		Generate:          false,
		GenRecordsPerFile: 5000,
		GenMinCities:      100,
		GenMaxCities:      200,
		GenDirtyRatio:     0.001,
		GenSeed:           0,
		GenYearToken:      "YY",
	}
}
