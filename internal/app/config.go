package app

import (
	"errors"
	"fmt"

	"github.com/vk/genmake/internal/config"
)

// DefaultOutputName is the file written into the target directory.
const DefaultOutputName = "Makefile"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Dir          string // target directory
	TemplatePath string // explicit template, empty to search
	OutputName   string
	ConfigPath   string // explicit project file, empty for the default
	Recursive    bool
	Overrides    config.Overrides

	DryRun      bool
	PrintConfig bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.OutputName == "" {
		return nil, errors.New("output name cannot be empty")
	}
	if cfg.DryRun && cfg.PrintConfig {
		return nil, errors.New("dry-run and print-config are mutually exclusive")
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	if cfg.Overrides == nil {
		cfg.Overrides = make(config.Overrides)
	}
	return &cfg, nil
}
