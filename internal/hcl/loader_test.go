package hcl

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/genmake/internal/config"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AllAttributes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeProjectFile(t, `
target    = "megaphone"
cxx       = "clang++"
cxxflags  = ["-Wall", "-Wextra", "-Werror", "-std=c++98"]
inc       = "-I. -Iinclude"
ldflags   = ""
lib_dir   = "../libcpp"
libs      = ["-lm"]
src       = ["megaphone.cpp", "utils.cpp"]
gtest_dir = "../../vendor/gtest"
checker   = "../scripts/checker.py"
recursive = true

vars = {
  STD   = "c++98"
  JOBS  = 4
  DEBUG = false
}
`)

	// --- Act ---
	pf, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	want := config.Overrides{
		config.KeyTarget:   "megaphone",
		config.KeyCXX:      "clang++",
		config.KeyCXXFlags: "-Wall -Wextra -Werror -std=c++98",
		config.KeyInc:      "-I. -Iinclude",
		config.KeyLDFlags:  "",
		config.KeyLibDir:   "../libcpp",
		config.KeyLibs:     "-lm",
		config.KeySrc:      "megaphone.cpp utils.cpp",
		config.KeyGTestDir: "../../vendor/gtest",
		config.KeyChecker:  "../scripts/checker.py",
	}
	if diff := cmp.Diff(want, pf.Overrides); diff != "" {
		t.Errorf("overrides mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, pf.Recursive)
	assert.Equal(t, path, pf.Path)

	assert.Equal(t, []string{"DEBUG", "JOBS", "STD"}, pf.Vars.Keys())
	assert.Equal(t, "c++98", pf.Vars.Value("STD"))
	assert.Equal(t, "4", pf.Vars.Value("JOBS"))
	assert.Equal(t, "false", pf.Vars.Value("DEBUG"))
}

func TestLoad_OnlySetAttributesBecomeOverrides(t *testing.T) {
	t.Parallel()
	path := writeProjectFile(t, `cxx = "g++"`)

	pf, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, config.Overrides{config.KeyCXX: "g++"}, pf.Overrides)
	assert.False(t, pf.Recursive)
	assert.Equal(t, 0, pf.Vars.Len())
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()
	pf, err := NewLoader().Load(context.Background(), writeProjectFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, pf.Overrides)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `target = `},
		{name: "unknown attribute", content: `compiler = "g++"`},
		{name: "object where string expected", content: `target = { a = 1 }`},
		{name: "nested list", content: `src = [["a.cpp"]]`},
		{name: "vars not an object", content: `vars = "x"`},
		{name: "vars shadows builtin", content: `vars = { CXX = "g++" }`},
		{name: "variable reference", content: `target = name`},
		{name: "recursive not a bool", content: `recursive = "maybe"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewLoader().Load(context.Background(), writeProjectFile(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), DefaultFileName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
