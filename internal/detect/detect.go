// Package detect locates optional auxiliary resources (a Google Test tree,
// a checker script, a shared helper library) by trying a fixed, ordered list
// of candidate paths relative to a starting directory.
package detect

import (
	"path/filepath"

	"github.com/vk/genmake/internal/fsutil"
)

// Check is the structural test a candidate must pass to count as a match.
type Check func(path string) bool

// IsDir matches existing directories.
func IsDir(path string) bool { return fsutil.IsDir(path) }

// IsFile matches existing regular files.
func IsFile(path string) bool { return fsutil.IsFile(path) }

// HasAny matches directories containing at least one of the given subpaths.
func HasAny(subpaths ...string) Check {
	return func(path string) bool {
		if !fsutil.IsDir(path) {
			return false
		}
		for _, sub := range subpaths {
			if fsutil.Exists(filepath.Join(path, filepath.FromSlash(sub))) {
				return true
			}
		}
		return false
	}
}

// Probe describes one auxiliary resource and where to look for it.
type Probe struct {
	Name       string
	Candidates []string // slash separated, most specific first
	Check      Check
}

// Find resolves each candidate against start in order and returns the first
// one that passes the probe's check. A miss is reported as ("", false).
func (p Probe) Find(start string) (string, bool) {
	candidates := make([]string, 0, len(p.Candidates))
	for _, c := range p.Candidates {
		candidates = append(candidates, filepath.Join(start, filepath.FromSlash(c)))
	}
	return FirstMatch(candidates, p.Check)
}

// FirstMatch returns the first path in candidates accepted by check.
func FirstMatch(candidates []string, check Check) (string, bool) {
	for _, c := range candidates {
		if check(c) {
			return filepath.Clean(c), true
		}
	}
	return "", false
}

// Rel expresses target relative to base with forward slashes. If no relative
// path exists, target is returned unchanged.
func Rel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

// GTest finds a Google Test checkout.
var GTest = Probe{
	Name: "gtest",
	Candidates: []string{
		"vendor/gtest",
		"../vendor/gtest",
		"../../vendor/gtest",
		"../../../vendor/gtest",
		"googletest",
		"../googletest",
	},
	Check: HasAny("include/gtest", "googletest/include/gtest"),
}

// Checker finds the checker helper script.
var Checker = Probe{
	Name: "checker",
	Candidates: []string{
		"vendor/scripts/checker.py",
		"../vendor/scripts/checker.py",
		"../../vendor/scripts/checker.py",
		"../../../vendor/scripts/checker.py",
		"scripts/checker.py",
		"../scripts/checker.py",
	},
	Check: IsFile,
}

// LibCPP finds the shared libcpp directory.
var LibCPP = Probe{
	Name: "libcpp",
	Candidates: []string{
		"libcpp",
		"../libcpp",
		"../../libcpp",
		"../../../libcpp",
	},
	Check: IsDir,
}
