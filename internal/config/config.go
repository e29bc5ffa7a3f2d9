// Package config handles configuration loading for FinTellect.
// It supports YAML config files with environment variable overrides.
// Configuration is loaded in the CLI layer and passed into the engine
// as a value; core packages never read the environment themselves.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Providers   ProvidersConfig   `mapstructure:"providers"   yaml:"providers"`
	Aggregation AggregationConfig `mapstructure:"aggregation" yaml:"aggregation"`
	Output      OutputConfig      `mapstructure:"output"      yaml:"output"`
}

// ProvidersConfig holds per-provider API keys. Keyless providers
// (Yahoo, TickerTape, Google News) need no entry.
type ProvidersConfig struct {
	FinnhubKey      string `mapstructure:"finnhub_key"      yaml:"finnhub_key"`
	AlphaVantageKey string `mapstructure:"alphavantage_key" yaml:"alphavantage_key"`
}

// AggregationConfig holds fallback-engine settings.
type AggregationConfig struct {
	TimeoutSec    int  `mapstructure:"timeout_sec"   yaml:"timeout_sec"`   // per provider call
	MaxArticles   int  `mapstructure:"max_articles"  yaml:"max_articles"`  // merged list cap
	Supplementary bool `mapstructure:"supplementary" yaml:"supplementary"` // sweep remaining tiers
	Statements    bool `mapstructure:"statements"    yaml:"statements"`    // pull annual statements (costly on free tiers)
}

// OutputConfig holds result-writing settings.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"` // empty means stdout only
}

// Timeout returns the per-call timeout as a duration.
func (a AggregationConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.fintellect/config.yaml (home directory)
//  3. /etc/fintellect/config.yaml (system)
//
// Environment variables override config file values.
// Format: FINTELLECT_<SECTION>_<KEY>, e.g., FINTELLECT_PROVIDERS_FINNHUB_KEY
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".fintellect"))
	v.AddConfigPath("/etc/fintellect")

	v.SetEnvPrefix("FINTELLECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FINTELLECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("aggregation.timeout_sec", 10)
	v.SetDefault("aggregation.max_articles", 25)
	v.SetDefault("aggregation.supplementary", true)
	v.SetDefault("aggregation.statements", false)

	v.SetDefault("output.dir", "")
}

// overrideFromEnv explicitly reads sensitive keys from environment
// variables, accepting the bare names the upstream providers document
// alongside the prefixed form.
func overrideFromEnv(cfg *Config) {
	for _, env := range []string{"FINTELLECT_PROVIDERS_FINNHUB_KEY", "FINNHUB_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			cfg.Providers.FinnhubKey = key
			break
		}
	}
	for _, env := range []string{"FINTELLECT_PROVIDERS_ALPHAVANTAGE_KEY", "ALPHA_VANTAGE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			cfg.Providers.AlphaVantageKey = key
			break
		}
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
