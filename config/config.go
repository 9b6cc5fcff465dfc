// Package config loads the concord configuration from a YAML file with
// environment-variable overrides, and converts it to the engine option
// types.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/revelaction/concord/dfm"
	"github.com/revelaction/concord/errs"
	"github.com/revelaction/concord/kwic"
	"github.com/revelaction/concord/tokens"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Corpus  CorpusConfig   `yaml:"corpus"`
	Tokens  tokens.Options `yaml:"tokens"`
	KWIC    KWICConfig     `yaml:"kwic"`
	Weight  WeightConfig   `yaml:"weight"`
	Logging LoggingConfig  `yaml:"logging"`
}

// CorpusConfig locates the text repository: a directory of .txt files or a
// SQLite file.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// KWICConfig holds the keyword-in-context defaults.
type KWICConfig struct {
	Window     int    `yaml:"window"`
	ValueType  string `yaml:"valueType"`
	IgnoreCase bool   `yaml:"ignoreCase"`
	CacheSize  int    `yaml:"cacheSize"`
}

// WeightConfig holds the dfm weighting defaults.
type WeightConfig struct {
	Scheme     string  `yaml:"scheme"`
	Multiplier float64 `yaml:"multiplier"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file (if provided), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path: "./corpus",
		},
		Tokens: tokens.Options{
			RemovePunct: true,
			Lowercase:   true,
		},
		KWIC: KWICConfig{
			Window:     5,
			ValueType:  "fixed",
			IgnoreCase: true,
			CacheSize:  kwic.DefaultCacheSize,
		},
		Weight: WeightConfig{
			Scheme:     "count",
			Multiplier: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate rejects unknown value types and schemes, and negative windows.
func (c *Config) Validate() error {
	if _, err := kwic.ParseValueType(c.KWIC.ValueType); err != nil {
		return err
	}
	if _, err := dfm.ParseScheme(c.Weight.Scheme); err != nil {
		return err
	}
	if c.KWIC.Window < 0 {
		return errs.Inputf("config", "negative kwic window %d", c.KWIC.Window)
	}
	return nil
}

// Pattern returns a kwic pattern for value with the configured value type
// and case policy.
func (c *Config) Pattern(value string) (kwic.Pattern, error) {
	vt, err := kwic.ParseValueType(c.KWIC.ValueType)
	if err != nil {
		return kwic.Pattern{}, err
	}
	return kwic.Pattern{Type: vt, Value: value, IgnoreCase: c.KWIC.IgnoreCase}, nil
}

// Compiler returns a pattern Compiler caching KWIC.CacheSize patterns.
func (c *Config) Compiler() *kwic.Compiler {
	return kwic.NewCompiler(c.KWIC.CacheSize)
}

// TokenOptions returns the configured tokenization policy.
func (c *Config) TokenOptions() tokens.Options {
	return c.Tokens
}

// Scheme returns the configured weighting scheme.
func (c *Config) Scheme() (dfm.Scheme, error) {
	return dfm.ParseScheme(c.Weight.Scheme)
}

// applyEnvOverrides reads CONCORD_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONCORD_CORPUS_PATH"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("CONCORD_KWIC_WINDOW"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			cfg.KWIC.Window = w
		}
	}
	if v := os.Getenv("CONCORD_KWIC_VALUE_TYPE"); v != "" {
		cfg.KWIC.ValueType = v
	}
	if v := os.Getenv("CONCORD_WEIGHT_SCHEME"); v != "" {
		cfg.Weight.Scheme = v
	}
	if v := os.Getenv("CONCORD_LOWERCASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tokens.Lowercase = b
		}
	}
	if v := os.Getenv("CONCORD_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CONCORD_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
