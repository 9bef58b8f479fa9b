package app

import (
	"errors"
	"fmt"

	"github.com/agilira/orpheus/pkg/orpheus"
)

// ErrDirectoryNotFound is returned when the target directory does not exist.
var ErrDirectoryNotFound = errors.New("directory not found")

// Errors returned by Run carry both an *orpheus.Error classifying the
// failure and the original error, so errors.As and errors.Is both work.

// missing logs a missing-input failure and classifies it for the caller.
func (a *App) missing(what string, err error) error {
	a.logger.Error("Missing input.", "input", what, "error", err)
	return fmt.Errorf("%w: %w", orpheus.NotFoundError(what, "missing input"), err)
}

// failed logs an execution failure and classifies it for the caller.
func (a *App) failed(operation string, err error) error {
	a.logger.Error("Generation failed.", "operation", operation, "error", err)
	return fmt.Errorf("%w: %w", orpheus.ExecutionError(operation, "execution failed"), err)
}
