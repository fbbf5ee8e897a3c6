package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/vantage/pkg/alphavantage"
)

// DotEnvFile is loaded by LoadFromFiles when present. Variables it defines
// never replace ones already set in the environment.
var DotEnvFile = ".env"

// Config represents the application configuration
type Config struct {
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
	Logging      LoggingConfig      `toml:"logging"`
	Storage      StorageConfig      `toml:"storage"`
	Output       OutputConfig       `toml:"output"`
}

// AlphaVantageConfig configures the API client.
type AlphaVantageConfig struct {
	APIKey  string `toml:"api_key"`                                  // Falls back to ALPHA_VANTAGE_API_KEY
	BaseURL string `toml:"base_url" validate:"required,url"`         // Query endpoint
	Timeout string `toml:"timeout" validate:"required,duration_gt0"` // Per-call timeout, e.g. "30s"
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Output []string `toml:"output" validate:"dive,oneof=stdout console file"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path string `toml:"path" validate:"required"` // Snapshot archive directory
}

// OutputConfig controls how the CLI prints results.
type OutputConfig struct {
	Format string `toml:"format" validate:"oneof=text json yaml"`
}

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	return &Config{
		AlphaVantage: AlphaVantageConfig{
			BaseURL: alphavantage.DefaultBaseURL,
			Timeout: alphavantage.DefaultTimeout.String(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/snapshots",
			},
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> files in
// order -> .env -> environment variables. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadDotEnv exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(config *Config) {
	if apiKey := os.Getenv(alphavantage.EnvAPIKey); apiKey != "" {
		config.AlphaVantage.APIKey = apiKey
	}
	if baseURL := os.Getenv("VANTAGE_BASE_URL"); baseURL != "" {
		config.AlphaVantage.BaseURL = baseURL
	}
	if timeout := os.Getenv("VANTAGE_TIMEOUT"); timeout != "" {
		config.AlphaVantage.Timeout = timeout
	}

	if level := os.Getenv("VANTAGE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("VANTAGE_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if badgerPath := os.Getenv("VANTAGE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if format := os.Getenv("VANTAGE_OUTPUT_FORMAT"); format != "" {
		config.Output.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, apiKey, logLevel, outputFormat string) {
	// Command-line flags have highest priority
	if apiKey != "" {
		config.AlphaVantage.APIKey = apiKey
	}
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
	if outputFormat != "" {
		config.Output.Format = outputFormat
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("duration_gt0", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	}); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid configuration %s: %v fails %q", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// TimeoutDuration returns the parsed client timeout, falling back to the
// client default when the value cannot be parsed.
func (c *AlphaVantageConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return alphavantage.DefaultTimeout
	}
	return d
}

// NewClient builds an API client from the configuration.
func (c *AlphaVantageConfig) NewClient(logger arbor.ILogger) (*alphavantage.Client, error) {
	return alphavantage.NewClient(c.APIKey,
		alphavantage.WithBaseURL(c.BaseURL),
		alphavantage.WithTimeout(c.TimeoutDuration()),
		alphavantage.WithLogger(logger),
	)
}
