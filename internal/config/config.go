// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SCREENER_WORKERS=8
const EnvPrefix = "SCREENER"

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// DefaultWorkers bounds batch screening concurrency when nothing is configured
const DefaultWorkers = 4

// evaluationDateLayout is the month format accepted for evaluation_date
const evaluationDateLayout = "2006-01"

// Config represents the CLI configuration loaded from a JSON or YAML file and the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Vocabulary  string `mapstructure:"vocabulary" json:"vocabulary,omitempty"`   // Vocabulary JSON; embedded table when empty
	Requirement string `mapstructure:"requirement" json:"requirement,omitempty"` // Requirement spec JSON

	// Extraction
	EvaluationDate string `mapstructure:"evaluation_date" json:"evaluation_date,omitempty"` // YYYY-MM used for "present"
	ParserVersion  string `mapstructure:"parser_version" json:"parser_version,omitempty"`

	// Screening
	Workers      int    `mapstructure:"workers" json:"workers,omitempty"`             // Concurrent documents in a batch
	CacheEnabled bool   `mapstructure:"cache_enabled" json:"cache_enabled,omitempty"` // Reuse profiles of identical uploads
	ActorID      string `mapstructure:"actor_id" json:"actor_id,omitempty"`           // Recorded as evaluator in audit events

	// Persistence
	DatabaseURL string `mapstructure:"database_url" json:"database_url,omitempty"` // PostgreSQL connection URL

	// Output
	Output  string `mapstructure:"output" json:"output,omitempty"` // text or json
	Verbose bool   `mapstructure:"verbose" json:"verbose,omitempty"`
	Debug   bool   `mapstructure:"debug" json:"debug,omitempty"`
	JSONLog bool   `mapstructure:"json_log" json:"json_log,omitempty"`
}

// keys lists every configuration key so environment overrides reach Unmarshal
var keys = []string{
	"vocabulary", "requirement", "evaluation_date", "parser_version",
	"workers", "cache_enabled", "actor_id", "database_url",
	"output", "verbose", "debug", "json_log",
}

// LoadConfig loads configuration from a JSON or YAML file, then applies SCREENER_*
// environment overrides. An empty path loads the environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}

	switch c.Output {
	case "", OutputText, OutputJSON:
	default:
		return fmt.Errorf("config error: 'output' must be %q or %q, got %q", OutputText, OutputJSON, c.Output)
	}

	if c.EvaluationDate != "" {
		if _, err := time.Parse(evaluationDateLayout, c.EvaluationDate); err != nil {
			return fmt.Errorf("config error: 'evaluation_date' must be YYYY-MM, got %q", c.EvaluationDate)
		}
	}

	// Validate file paths exist (if specified)
	if c.Vocabulary != "" {
		if _, err := os.Stat(c.Vocabulary); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.Vocabulary)
		}
	}
	if c.Requirement != "" {
		if _, err := os.Stat(c.Requirement); os.IsNotExist(err) {
			return fmt.Errorf("config error: requirement file not found: %s", c.Requirement)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Vocabulary == "" {
		result.Vocabulary = defaults.Vocabulary
	}
	if result.Requirement == "" {
		result.Requirement = defaults.Requirement
	}
	if result.EvaluationDate == "" {
		result.EvaluationDate = defaults.EvaluationDate
	}
	if result.ParserVersion == "" {
		result.ParserVersion = defaults.ParserVersion
	}
	if result.ActorID == "" {
		result.ActorID = defaults.ActorID
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Output == "" {
		result.Output = OutputText
	}

	// Int fields: use default if zero
	if result.Workers == 0 {
		if defaults.Workers > 0 {
			result.Workers = defaults.Workers
		} else {
			result.Workers = DefaultWorkers
		}
	}

	// Bool fields: true in either wins
	result.CacheEnabled = result.CacheEnabled || defaults.CacheEnabled
	result.Verbose = result.Verbose || defaults.Verbose
	result.Debug = result.Debug || defaults.Debug
	result.JSONLog = result.JSONLog || defaults.JSONLog

	return result
}

// EvaluationMonth parses EvaluationDate, returning the current month when it is empty
func (c *Config) EvaluationMonth(now time.Time) (types.YearMonth, error) {
	if c.EvaluationDate == "" {
		return types.NewYearMonth(now), nil
	}
	t, err := time.Parse(evaluationDateLayout, c.EvaluationDate)
	if err != nil {
		return types.YearMonth{}, fmt.Errorf("invalid evaluation date %q: %w", c.EvaluationDate, err)
	}
	return types.NewYearMonth(t), nil
}
