// Package resolver assembles the final configuration mapping for a project
// directory. Explicit overrides always win; auto-detection only fills keys
// the operator left unset; derived keys are computed last.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/genmake/internal/config"
	"github.com/vk/genmake/internal/ctxlog"
	"github.com/vk/genmake/internal/detect"
	"github.com/vk/genmake/internal/sources"
)

// Options describes one resolution run.
type Options struct {
	// Dir is the absolute target directory.
	Dir string
	// Overrides are the explicitly supplied values.
	Overrides config.Overrides
	// Vars are extra keys appended after the built-in ones. May be nil.
	Vars *config.Values
	// Recursive enables recursive source enumeration.
	Recursive bool
}

// Report describes what resolution discovered.
type Report struct {
	// Detected lists the keys filled by auto-detection, in detection order.
	Detected []string
	// Sources are the enumerated source files, nil when SRC was overridden.
	Sources []string
	// Tests are the enumerated test sources and their derived artifacts.
	Tests sources.TestSet
}

// auxiliary ties a detection probe to the key it fills.
type auxiliary struct {
	key   string
	probe detect.Probe
	note  string
}

var auxiliaries = []auxiliary{
	{key: config.KeyGTestDir, probe: detect.GTest},
	{key: config.KeyChecker, probe: detect.Checker},
	{key: config.KeyLibDir, probe: detect.LibCPP, note: "use LCPP=1 to enable"},
}

// Resolve builds the configuration mapping for opts.Dir.
func Resolve(ctx context.Context, opts Options) (*config.Values, *Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolver started.", "dir", opts.Dir, "overrides", len(opts.Overrides), "recursive", opts.Recursive)

	values := config.Defaults()
	applyOverrides(values, opts.Overrides)

	report := &Report{}

	if !opts.Overrides.Has(config.KeySrc) {
		srcs, err := sources.Find(ctx, opts.Dir, opts.Recursive)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to enumerate sources in %s: %w", opts.Dir, err)
		}
		report.Sources = srcs
		if len(srcs) > 0 {
			values.Set(config.KeySrc, strings.Join(srcs, " "))
			report.Detected = append(report.Detected, config.KeySrc)
			logger.Info("Detected source files.", "count", len(srcs))
		} else {
			logger.Warn("No source files found.", "dir", opts.Dir)
		}
	}

	tests, err := sources.FindTests(ctx, opts.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate tests in %s: %w", opts.Dir, err)
	}
	report.Tests = tests
	values.Set(config.KeyTestSrcs, strings.Join(tests.Sources, " "))
	values.Set(config.KeyTestBins, strings.Join(tests.Bins, " "))
	values.Set(config.KeyTestObjs, strings.Join(tests.Objs, " "))
	if tests.Len() > 0 {
		logger.Debug("Detected test sources.", "count", tests.Len())
	}

	if !opts.Overrides.Has(config.KeyTarget) {
		if name, ok := targetName(opts.Dir); ok {
			values.Set(config.KeyTarget, name)
			report.Detected = append(report.Detected, config.KeyTarget)
			logger.Info("Detected target.", "name", name)
		}
	}

	for _, aux := range auxiliaries {
		if opts.Overrides.Has(aux.key) {
			continue
		}
		found, ok := aux.probe.Find(opts.Dir)
		if !ok {
			logger.Debug("Auxiliary path not found.", "probe", aux.probe.Name)
			continue
		}
		rel := detect.Rel(opts.Dir, found)
		values.Set(aux.key, rel)
		report.Detected = append(report.Detected, aux.key)
		if aux.note != "" {
			logger.Info("Detected "+aux.probe.Name+".", "path", rel, "note", aux.note)
		} else {
			logger.Info("Detected "+aux.probe.Name+".", "path", rel)
		}
	}

	if opts.Vars != nil {
		for _, k := range opts.Vars.Keys() {
			values.Set(k, opts.Vars.Value(k))
		}
	}

	logger.Debug("Resolver finished.", "keys", values.Len(), "detected", report.Detected)
	return values, report, nil
}

// applyOverrides copies overrides into values: built-in keys first, in their
// canonical positions, then any other keys in lexical order.
func applyOverrides(values *config.Values, overrides config.Overrides) {
	var extra []string
	for k := range overrides {
		if _, builtin := values.Get(k); !builtin {
			extra = append(extra, k)
		}
	}
	for _, k := range config.Keys {
		if v, ok := overrides[k]; ok {
			values.Set(k, v)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		values.Set(k, overrides[k])
	}
}

// targetName derives a binary name from the directory's own name.
func targetName(dir string) (string, bool) {
	name := filepath.Base(filepath.Clean(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", false
	}
	return name, true
}
