package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/genmake/internal/app"
	"github.com/vk/genmake/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// overrideFlags maps flag names to the template key they override.
var overrideFlags = map[string]string{
	"target":     config.KeyTarget,
	"src":        config.KeySrc,
	"cxx":        config.KeyCXX,
	"cxxflags":   config.KeyCXXFlags,
	"gtest-dir":  config.KeyGTestDir,
	"checker":    config.KeyChecker,
	"libcpp-dir": config.KeyLibDir,
}

// keepEmpty lists override flags where an explicit empty value still counts.
var keepEmpty = map[string]bool{
	"cxx":      true,
	"cxxflags": true,
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("genmake", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
genmake - Generate a Makefile from a Makefile.in template.

Usage:
  genmake [options] [DIRECTORY]

Arguments:
  DIRECTORY
    Target directory containing the sources (default: current directory).

Options:
`)
		flagSet.PrintDefaults()
	}

	templateFlag := flagSet.String("template", "", "Path to the Makefile.in template (default: auto-detect).")
	outputFlag := flagSet.String("output", app.DefaultOutputName, "Output filename, relative to DIRECTORY unless absolute.")
	flagSet.String("target", "", "Target executable name (default: directory name).")
	flagSet.String("src", "", `Source files, e.g. "main.cpp utils.cpp" (default: auto-detect).`)
	flagSet.String("cxx", config.DefaultCXX, "C++ compiler.")
	flagSet.String("cxxflags", config.DefaultCXXFlags, "Compiler flags.")
	flagSet.String("gtest-dir", "", "Google Test directory (default: auto-detect).")
	flagSet.String("checker", "", "Checker script path (default: auto-detect).")
	flagSet.String("libcpp-dir", "", "libcpp directory (default: auto-detect).")
	recursiveFlag := flagSet.Bool("recursive", false, "Recursively find source files in subdirectories.")
	configFlag := flagSet.String("config", "", "Project file (default: DIRECTORY/.genmake.hcl when present).")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the generated Makefile instead of writing it.")
	printConfigFlag := flagSet.Bool("print-config", false, "Print the resolved values as YAML and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	// flag stops at the first positional argument; keep parsing after it so
	// options may follow DIRECTORY. Everything after "--" is positional.
	var positional []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if err == flag.ErrHelp {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if flagSet.NArg() == 0 {
			break
		}
		if consumed := len(rest) - flagSet.NArg(); consumed > 0 && rest[consumed-1] == "--" {
			positional = append(positional, flagSet.Args()...)
			break
		}
		positional = append(positional, flagSet.Arg(0))
		rest = flagSet.Args()[1:]
	}
	slog.Debug("Arguments parsed successfully.")

	if len(positional) > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("too many arguments: %s", strings.Join(positional, " "))}
	}
	dir := "."
	if len(positional) == 1 {
		dir = positional[0]
	}
	slog.Debug("Target directory determined.", "dir", dir)

	overrides := make(config.Overrides)
	flagSet.Visit(func(f *flag.Flag) {
		key, ok := overrideFlags[f.Name]
		if !ok {
			return
		}
		value := f.Value.String()
		if value == "" && !keepEmpty[f.Name] {
			return
		}
		overrides[key] = value
	})

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		Dir:          dir,
		TemplatePath: *templateFlag,
		OutputName:   *outputFlag,
		ConfigPath:   *configFlag,
		Recursive:    *recursiveFlag,
		Overrides:    overrides,
		DryRun:       *dryRunFlag,
		PrintConfig:  *printConfigFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
