package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/vk/genmake/internal/config"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	loader config.Loader

	// executable and getwd feed the template search; replaced in tests.
	executable func() (string, error)
	getwd      func() (string, error)
}

// NewApp is the constructor for the main application. Rendered output and
// printed configuration go to outW; logs go to logW through an isolated
// logger.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:       outW,
		logger:     logger,
		cfg:        cfg,
		loader:     loader,
		executable: os.Executable,
		getwd:      os.Getwd,
	}
}
