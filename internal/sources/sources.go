// Package sources enumerates C and C++ translation units in a project
// directory and derives the test artifacts a Makefile has to build.
package sources

import (
	"context"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/genmake/internal/fsutil"
)

// Extensions are the recognized source file extensions.
var Extensions = []string{".cpp", ".cc", ".cxx", ".c"}

// Reserved subdirectory names.
const (
	TestDir = "tests"
	BinDir  = "$(BIN_DIR)"
	ObjDir  = "$(OBJ_DIR)"
)

// Find lists the source files of dir, relative to dir and sorted. Files under
// the top-level tests directory are excluded. An empty, non-nil slice means
// nothing was found.
func Find(ctx context.Context, dir string, recursive bool) ([]string, error) {
	found, err := fsutil.FindFilesByExtension(ctx, dir, Extensions, recursive)
	if err != nil {
		return nil, err
	}

	srcs := make([]string, 0, len(found))
	for _, f := range found {
		if isTestPath(f) {
			continue
		}
		srcs = append(srcs, f)
	}
	sort.Strings(srcs)
	return srcs, nil
}

func isTestPath(rel string) bool {
	return rel == TestDir || strings.HasPrefix(rel, TestDir+"/")
}

// TestSet holds the test sources of a project together with the binaries and
// objects derived from them. All three slices are index aligned.
type TestSet struct {
	Sources []string
	Bins    []string
	Objs    []string
}

// Len returns the number of test sources.
func (t TestSet) Len() int { return len(t.Sources) }

// FindTests enumerates the direct children of dir/tests. A missing tests
// directory yields an empty set.
func FindTests(ctx context.Context, dir string) (TestSet, error) {
	testDir := filepath.Join(dir, TestDir)
	if !fsutil.IsDir(testDir) {
		return TestSet{}, nil
	}
	found, err := fsutil.FindFilesByExtension(ctx, testDir, Extensions, false)
	if err != nil {
		return TestSet{}, err
	}
	sort.Strings(found)

	set := TestSet{
		Sources: make([]string, 0, len(found)),
		Bins:    make([]string, 0, len(found)),
		Objs:    make([]string, 0, len(found)),
	}
	for _, name := range found {
		stem := strings.TrimSuffix(name, path.Ext(name))
		set.Sources = append(set.Sources, TestDir+"/"+name)
		set.Bins = append(set.Bins, BinDir+"/"+stem)
		set.Objs = append(set.Objs, ObjDir+"/"+TestDir+"/"+stem+".o")
	}
	return set, nil
}
