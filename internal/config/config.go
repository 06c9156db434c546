package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Output formats accepted by output_format.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	BaseURI            string        `mapstructure:"comments_base_uri"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	PublishersFile     string        `mapstructure:"publishers_file"`
	SnapshotPath       string        `mapstructure:"snapshot_path"`
	OutputFormat       string        `mapstructure:"output_format"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	return LoadFrom("configs/.env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	_ = godotenv.Load(envFile)

	v := viper.New()

	v.SetDefault("app_name", "samvad-comments")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("comments_base_uri", "")
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("publishers_file", "")
	v.SetDefault("snapshot_path", "")
	v.SetDefault("output_format", OutputTable)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises derived fields and checks invariants. Callers that
// override fields after Load (for example from CLI flags) run it again.
func (cfg *Config) Validate() error {
	cfg.BaseURI = strings.TrimSpace(cfg.BaseURI)
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))

	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	switch cfg.OutputFormat {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output_format %q (expected table, json or yaml)", cfg.OutputFormat)
	}
	return nil
}

// RequireBaseURI reports a configuration error when no comments endpoint is set.
func (cfg *Config) RequireBaseURI() error {
	if cfg.BaseURI == "" {
		return fmt.Errorf("comments_base_uri is required")
	}
	return nil
}
