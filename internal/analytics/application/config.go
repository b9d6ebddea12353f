package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ranking-period/internal/analytics/domain/period"
)

// Output formats accepted by the command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Config defines resolver command configuration.
type Config struct {
	DefaultGranularity string `yaml:"default_granularity"`
	OutputFormat       string `yaml:"output_format"`
	ExportDir          string `yaml:"export_dir"`
	MetricsTextfile    string `yaml:"metrics_textfile"`
	WindowLimit        int    `yaml:"window_limit"`
}

// LoadConfig loads config from yaml or env.
func LoadConfig() (Config, error) {
	var cfg Config

	if path := os.Getenv("PERIOD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.DefaultGranularity == "" {
		cfg.DefaultGranularity = getenvDefault("PERIOD_DEFAULT_GRANULARITY", period.Daily.String())
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = getenvDefault("PERIOD_OUTPUT_FORMAT", FormatText)
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = getenvDefault("PERIOD_EXPORT_DIR", filepath.FromSlash("var/exports/period"))
	}
	if cfg.MetricsTextfile == "" {
		cfg.MetricsTextfile = os.Getenv("PERIOD_METRICS_TEXTFILE")
	}
	if cfg.WindowLimit == 0 {
		cfg.WindowLimit = getenvIntDefault("PERIOD_WINDOW_LIMIT", period.DefaultWindowLimit)
	}

	return cfg, cfg.Validate()
}

// Validate checks config values.
func (c Config) Validate() error {
	if _, err := period.ParseGranularity(c.DefaultGranularity); err != nil {
		return fmt.Errorf("period config: default granularity: %w", err)
	}
	if !ValidFormat(c.OutputFormat) {
		return fmt.Errorf("period config: unsupported output format %q", c.OutputFormat)
	}
	if c.WindowLimit <= 0 {
		return errors.New("period config: window limit must be positive")
	}
	return nil
}

// ValidFormat reports whether format is a known output format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatCSV, FormatXLSX, FormatPDF:
		return true
	default:
		return false
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
