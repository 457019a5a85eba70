package generator

// Defaults for a generated corpus.
const (
	DefaultRecordsPerFile = 5000
	DefaultMinCities      = 100
	DefaultMaxCities      = 200
	DefaultDirtyRatio     = 0.001
	DefaultYearToken      = "YY"
)

// Value ranges of generated records.
const (
	months          = 12
	maxDay          = 28
	minDurationSecs = 3600
	maxDurationSecs = 7200
	maxPassengers   = 200
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Config holds configuration for a corpus generation run.
type Config struct {
	RecordsPerFile int     // records written to every file
	MinCities      int     // lower bound of the city count, inclusive
	MaxCities      int     // upper bound of the city count, inclusive
	DirtyRatio     float64 // probability that passengers_on_board is null
	YearToken      string  // year part of file names and dates
	Seed           int64   // zero picks a time-based seed
	Writers        int     // concurrent file writers; zero means one per CPU
}

// Option applies a configuration option to Config.
type Option func(*Config)

// WithRecordsPerFile sets the number of records per file.
func WithRecordsPerFile(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.RecordsPerFile = n
		}
	}
}

// WithCityRange bounds the number of cities drawn for the corpus.
func WithCityRange(lo, hi int) Option {
	return func(c *Config) {
		if lo > 0 && hi >= lo {
			c.MinCities = lo
			c.MaxCities = hi
		}
	}
}

// WithDirtyRatio sets the probability of a null passenger count.
func WithDirtyRatio(p float64) Option {
	return func(c *Config) {
		if p >= 0 && p <= 1 {
			c.DirtyRatio = p
		}
	}
}

// WithYearToken sets the year token used in names and dates.
func WithYearToken(token string) Option {
	return func(c *Config) {
		if token != "" {
			c.YearToken = token
		}
	}
}

// WithSeed makes the run reproducible.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithWriters sets how many files are encoded and written concurrently.
func WithWriters(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Writers = n
		}
	}
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) Config {
	c := Config{
		RecordsPerFile: DefaultRecordsPerFile,
		MinCities:      DefaultMinCities,
		MaxCities:      DefaultMaxCities,
		DirtyRatio:     DefaultDirtyRatio,
		YearToken:      DefaultYearToken,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
