package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/genmake/internal/detect"
)

// DefaultTemplateName is the file name searched for when no template is given.
const DefaultTemplateName = "Makefile.in"

// ErrTemplateNotFound is returned when no template could be found or read.
var ErrTemplateNotFound = errors.New("template not found")

// SearchError reports the locations that were tried for a template.
type SearchError struct {
	Searched []string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("could not find %s (searched: %s)", DefaultTemplateName, strings.Join(e.Searched, ", "))
}

// Unwrap allows errors.Is(err, ErrTemplateNotFound).
func (e *SearchError) Unwrap() error { return ErrTemplateNotFound }

// Candidates returns the conventional template locations for targetDir in
// search order: next to the executable, the working directory, the target
// directory and its parent. Locations that cannot be determined are skipped,
// and a location reached twice is only listed the first time.
func Candidates(executable, cwd, targetDir string) []string {
	var dirs []string
	if executable != "" {
		dirs = append(dirs, filepath.Dir(executable))
	}
	if cwd != "" {
		dirs = append(dirs, cwd)
	}
	dirs = append(dirs, targetDir, filepath.Dir(targetDir))

	out := make([]string, 0, len(dirs))
	seen := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		c := filepath.Join(d, DefaultTemplateName)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Locate picks the template to render. An explicit path wins and is only
// made absolute; its existence is checked when it is loaded. Otherwise the
// first existing candidate is used.
func Locate(explicit string, candidates []string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolving template path %s: %w", explicit, err)
		}
		return abs, nil
	}

	if found, ok := detect.FirstMatch(candidates, detect.IsFile); ok {
		return found, nil
	}
	return "", &SearchError{Searched: candidates}
}

// Load reads the whole template at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes the rendered text to path, replacing any existing file.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
