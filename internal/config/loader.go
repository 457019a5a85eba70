package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	envPrefix     = "FLIGHTSTATS_"
	envConfigPath = "FLIGHTSTATS_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FLIGHTSTATS_CONFIG is set
//  3. env (prefix FLIGHTSTATS_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// FLIGHTSTATS_TOP_N -> top_n. Underscores are kept so keys stay flat.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}
	// The config path itself is not a field.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.CorpusDir) == "":
		return fmt.Errorf("%w: corpus_dir must not be empty", ErrInvalidConfig)
	case c.TopN <= 0:
		return fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidConfig, c.TopN)
	case c.GenRecordsPerFile < 0:
		return fmt.Errorf("%w: gen_records_per_file must not be negative", ErrInvalidConfig)
	case c.GenMinCities < 1 || c.GenMaxCities < c.GenMinCities:
		return fmt.Errorf("%w: gen city range [%d, %d] is empty", ErrInvalidConfig, c.GenMinCities, c.GenMaxCities)
	case c.GenDirtyRatio < 0 || c.GenDirtyRatio > 1:
		return fmt.Errorf("%w: gen_dirty_ratio must be within [0, 1]", ErrInvalidConfig)
	case strings.ContainsAny(c.GenYearToken, `/\`):
		return fmt.Errorf("%w: gen_year_token must not contain path separators", ErrInvalidConfig)
	}
	return nil
}
