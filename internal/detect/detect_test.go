package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755))
	}
}

func touch(t *testing.T, root, name string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, nil, 0o644))
}

func TestGTestPrefersNearestCandidate(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	project := filepath.Join(root, "module00", "ex00")
	mkdirs(t, root,
		"module00/ex00",
		"vendor/gtest/include/gtest",
		"module00/vendor/gtest/include/gtest",
	)

	got, ok := GTest.Find(project)
	require.True(t, ok)
	assert.Equal(t, "../vendor/gtest", Rel(project, got))
}

func TestGTestAcceptsNestedLayout(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	mkdirs(t, root, "googletest/googletest/include/gtest")

	got, ok := GTest.Find(root)
	require.True(t, ok)
	assert.Equal(t, "googletest", Rel(root, got))
}

func TestGTestRejectsDirectoryWithoutHeaders(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	mkdirs(t, root, "vendor/gtest/src")

	_, ok := GTest.Find(root)
	assert.False(t, ok)
}

func TestCheckerRequiresRegularFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	project := filepath.Join(root, "proj")
	mkdirs(t, root, "proj", "proj/vendor/scripts/checker.py")
	touch(t, root, "scripts/checker.py")

	got, ok := Checker.Find(project)
	require.True(t, ok)
	assert.Equal(t, "../scripts/checker.py", Rel(project, got))
}

func TestLibCPPNotFound(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	project := filepath.Join(root, "a", "b", "c", "d")
	mkdirs(t, root, "a/b/c/d")

	got, ok := LibCPP.Find(project)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestLibCPPSearchesUpwards(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	project := filepath.Join(root, "a", "b", "c")
	mkdirs(t, root, "a/b/c", "libcpp")

	got, ok := LibCPP.Find(project)
	require.True(t, ok)
	assert.Equal(t, "../../../libcpp", Rel(project, got))
}

func TestFirstMatchOrder(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	touch(t, root, "second")
	touch(t, root, "third")

	got, ok := FirstMatch([]string{
		filepath.Join(root, "first"),
		filepath.Join(root, "second"),
		filepath.Join(root, "third"),
	}, IsFile)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "second"), got)

	_, ok = FirstMatch(nil, IsFile)
	assert.False(t, ok)
}
