package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vk/genmake/internal/config"
	"github.com/vk/genmake/internal/ctxlog"
	"github.com/vk/genmake/internal/fsutil"
	"github.com/vk/genmake/internal/hcl"
	"github.com/vk/genmake/internal/render"
	"github.com/vk/genmake/internal/resolver"
)

// Run executes the generation pipeline once.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	dir, err := resolveDir(a.cfg.Dir)
	if err != nil {
		return a.missing("directory", err)
	}

	pf, err := a.loadProjectFile(ctx, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return a.missing("config", err)
		}
		return a.failed("config", err)
	}

	templatePath, err := render.Locate(a.cfg.TemplatePath, render.Candidates(a.executablePath(), a.workingDir(), dir))
	if err != nil {
		var searchErr *render.SearchError
		if errors.As(err, &searchErr) {
			a.logger.Error("Could not find template.", "searched", searchErr.Searched)
		}
		return a.missing("template", err)
	}
	a.logger.Info("Generating Makefile.", "template", templatePath, "directory", dir)

	text, err := render.Load(templatePath)
	if err != nil {
		if errors.Is(err, render.ErrTemplateNotFound) {
			return a.missing("template", err)
		}
		return a.failed("read", err)
	}

	values, report, err := resolver.Resolve(ctx, resolver.Options{
		Dir:       dir,
		Overrides: a.cfg.Overrides.Merge(pf.Overrides),
		Vars:      pf.Vars,
		Recursive: a.cfg.Recursive || pf.Recursive,
	})
	if err != nil {
		return a.failed("resolve", err)
	}
	a.logger.Debug("Configuration resolved.", "sources", len(report.Sources), "tests", report.Tests.Len(), "detected", report.Detected)

	if a.cfg.PrintConfig {
		if err := a.printConfig(values, report); err != nil {
			return a.failed("print", err)
		}
		return nil
	}

	out := render.Render(text, values)

	if a.cfg.DryRun {
		if _, err := fmt.Fprint(a.outW, out); err != nil {
			return a.failed("print", err)
		}
		a.logger.Info("Dry run, nothing written.")
		return nil
	}

	outputPath := a.outputPath(dir)
	if err := render.WriteFile(outputPath, out); err != nil {
		return a.failed("write", err)
	}
	a.logger.Info("Makefile generated.", "path", outputPath)

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolveDir turns dir into an absolute, symlink-free directory path.
func resolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if !fsutil.IsDir(abs) {
		return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, abs)
	}
	return abs, nil
}

// loadProjectFile reads the explicit project file, or the default one in dir
// when it exists. The returned value is never nil on success.
func (a *App) loadProjectFile(ctx context.Context, dir string) (*config.ProjectFile, error) {
	path := a.cfg.ConfigPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, hcl.DefaultFileName)
	}

	pf, err := a.loader.Load(ctx, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			a.logger.Debug("No project file.", "path", path)
			return &config.ProjectFile{Overrides: config.Overrides{}, Vars: config.NewValues()}, nil
		}
		return nil, err
	}
	a.logger.Info("Loaded project file.", "path", pf.Path, "overrides", len(pf.Overrides), "vars", pf.Vars.Len())
	return pf, nil
}

// printConfig writes values as YAML, marking the keys that were
// auto-detected rather than defaulted or supplied.
func (a *App) printConfig(values *config.Values, report *resolver.Report) error {
	raw, err := values.MarshalYAML()
	if err != nil {
		return err
	}
	node := raw.(*yaml.Node)

	detected := make(map[string]bool, len(report.Detected))
	for _, k := range report.Detected {
		detected[k] = true
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if detected[node.Content[i].Value] {
			node.Content[i+1].LineComment = "detected"
		}
	}

	enc := yaml.NewEncoder(a.outW)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

func (a *App) outputPath(dir string) string {
	if filepath.IsAbs(a.cfg.OutputName) {
		return a.cfg.OutputName
	}
	return filepath.Join(dir, a.cfg.OutputName)
}

func (a *App) executablePath() string {
	p, err := a.executable()
	if err != nil {
		a.logger.Debug("Executable path unavailable.", "error", err)
		return ""
	}
	return p
}

func (a *App) workingDir() string {
	wd, err := a.getwd()
	if err != nil {
		a.logger.Debug("Working directory unavailable.", "error", err)
		return ""
	}
	return wd
}
