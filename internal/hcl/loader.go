package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/genmake/internal/config"
	"github.com/vk/genmake/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// DefaultFileName is the project file looked up in the target directory.
const DefaultFileName = ".genmake.hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	converter *Converter
}

// NewLoader creates a new HCL project file loader.
func NewLoader() *Loader {
	return &Loader{converter: NewConverter()}
}

var _ config.Loader = (*Loader)(nil)

// fileRoot lists every attribute a project file may set. Expressions are
// kept raw so that a value may be written either as a string or a list.
type fileRoot struct {
	Target    hcl.Expression `hcl:"target,optional"`
	CXX       hcl.Expression `hcl:"cxx,optional"`
	CXXFlags  hcl.Expression `hcl:"cxxflags,optional"`
	Inc       hcl.Expression `hcl:"inc,optional"`
	LDFlags   hcl.Expression `hcl:"ldflags,optional"`
	LibDir    hcl.Expression `hcl:"lib_dir,optional"`
	Libs      hcl.Expression `hcl:"libs,optional"`
	Src       hcl.Expression `hcl:"src,optional"`
	GTestDir  hcl.Expression `hcl:"gtest_dir,optional"`
	Checker   hcl.Expression `hcl:"checker,optional"`
	Recursive bool           `hcl:"recursive,optional"`
	Vars      hcl.Expression `hcl:"vars,optional"`
}

// Load parses the project file at path. A missing file is reported with an
// error wrapping fs.ErrNotExist so callers can decide whether it matters.
func (l *Loader) Load(ctx context.Context, path string) (*config.ProjectFile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL project file loader started.", "path", path)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error accessing project file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	pf := &config.ProjectFile{
		Path:      path,
		Overrides: make(config.Overrides),
		Vars:      config.NewValues(),
		Recursive: root.Recursive,
	}

	attrs := []struct {
		key  string
		expr hcl.Expression
	}{
		{config.KeyTarget, root.Target},
		{config.KeyCXX, root.CXX},
		{config.KeyCXXFlags, root.CXXFlags},
		{config.KeyInc, root.Inc},
		{config.KeyLDFlags, root.LDFlags},
		{config.KeyLibDir, root.LibDir},
		{config.KeyLibs, root.Libs},
		{config.KeySrc, root.Src},
		{config.KeyGTestDir, root.GTestDir},
		{config.KeyChecker, root.Checker},
	}
	for _, attr := range attrs {
		val, err := evaluate(attr.expr)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s in %s: %w", attr.key, path, err)
		}
		if val.IsNull() {
			continue
		}
		s, err := l.converter.ToString(ctx, val)
		if err != nil {
			return nil, fmt.Errorf("invalid %s in %s: %w", attr.key, path, err)
		}
		pf.Overrides[attr.key] = s
	}

	if err := l.loadVars(ctx, root.Vars, pf); err != nil {
		return nil, fmt.Errorf("invalid vars in %s: %w", path, err)
	}

	logger.Debug("HCL project file loaded.", "overrides", len(pf.Overrides), "vars", pf.Vars.Len(), "recursive", pf.Recursive)
	return pf, nil
}

// loadVars copies the vars object into pf.Vars. Object attributes iterate in
// lexical order, which keeps rendering deterministic.
func (l *Loader) loadVars(ctx context.Context, expr hcl.Expression, pf *config.ProjectFile) error {
	val, err := evaluate(expr)
	if err != nil {
		return err
	}
	if val.IsNull() {
		return nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("vars must be an object, got %s", ty.FriendlyName())
	}

	builtin := make(map[string]bool, len(config.Keys))
	for _, k := range config.Keys {
		builtin[k] = true
	}

	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		name := k.AsString()
		if builtin[name] {
			return fmt.Errorf("%q is a built-in key and cannot be redefined in vars", name)
		}
		if v.IsNull() {
			continue
		}
		s, err := l.converter.ToString(ctx, v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		pf.Vars.Set(name, s)
	}
	return nil
}

func evaluate(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}
