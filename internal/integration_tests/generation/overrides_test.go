package integration_tests

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/genmake/internal/testutil"
)

// Test for: flags replace detected values and bare keys are prefix safe
func TestGeneration_FlagOverrides(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root, dir := testutil.Project(t, "proj", map[string]string{
		"Makefile.in":   "$CXX $CXXFLAGS -o $TARGET $SRC | $CHECKER | $LIB_DIR\n",
		"proj/main.cpp": "",
		"libcpp/.keep":  "",
	})

	// --- Act ---
	_, _, err := generate(t,
		"--template", filepath.Join(root, "Makefile.in"),
		"--cxx", "g++",
		"--cxxflags", "-O2 -g",
		"--target", "app",
		"--src", "x.cpp y.cpp",
		"--checker", "/opt/check.py",
		dir,
	)

	// --- Assert ---
	require.NoError(t, err)
	testutil.AssertFileContent(t, filepath.Join(dir, "Makefile"), "g++ -O2 -g -o app x.cpp y.cpp | /opt/check.py | ../libcpp\n")
}

// Test for: recursive discovery only skips the top level tests directory
func TestGeneration_Recursive(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, dir := testutil.Project(t, "proj", map[string]string{
		"proj/Makefile.in":         "SRC=$(SRC)\nTEST_SRCS=$(TEST_SRCS)\n",
		"proj/main.cpp":            "",
		"proj/core/engine.cc":      "",
		"proj/core/tests/inner.c":  "",
		"proj/tests/test_main.cpp": "",
	})

	// --- Act ---
	_, _, err := generate(t, dir, "--recursive")

	// --- Assert ---
	require.NoError(t, err)
	want := "SRC=core/engine.cc core/tests/inner.c main.cpp\nTEST_SRCS=tests/test_main.cpp\n"
	testutil.AssertFileContent(t, filepath.Join(dir, "Makefile"), want)
}

// Test for: the project file sits between flags and detection
func TestGeneration_ProjectFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, dir := testutil.Project(t, "proj", map[string]string{
		"proj/Makefile.in": "$(TARGET) $(CXX) $(INC) $(LDFLAGS) $(STD)\n",
		"proj/main.cpp":    "",
		"proj/.genmake.hcl": `
target  = "server"
cxx     = "clang++"
inc     = ["-Iinclude", "-Ivendor"]
ldflags = "-pthread"

vars = {
  STD = "c++17"
}
`,
	})

	// --- Act ---
	_, logs, err := generate(t, "--target", "client", dir)

	// --- Assert ---
	require.NoError(t, err)
	testutil.AssertFileContent(t, filepath.Join(dir, "Makefile"), "client clang++ -Iinclude -Ivendor -pthread c++17\n")
	testutil.AssertLogged(t, logs, "Loaded project file.")
}

// Test for: print-config shows the resolved values without writing
func TestGeneration_PrintConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	_, dir := testutil.Project(t, "proj", map[string]string{
		"proj/Makefile.in": "unused\n",
		"proj/main.cpp":    "",
	})

	// --- Act ---
	out, _, err := generate(t, "--print-config", dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out, "SRC: main.cpp # detected\n")
	require.Contains(t, out, "TARGET: proj # detected\n")
	require.NoFileExists(t, filepath.Join(dir, "Makefile"))
}
