// Package fsutil provides file system utility functions.
package fsutil

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vk/genmake/internal/ctxlog"
)

// FindFilesByExtension searches rootPath for files whose extension is one of
// extensions. Unless recursive is set only the direct children of rootPath
// are considered. Symlinked directories are never descended into, and
// subdirectories that cannot be read are skipped with a warning.
//
// The returned paths are relative to rootPath, slash separated, and in the
// order the file system yields them.
func FindFilesByExtension(ctx context.Context, rootPath string, extensions []string, recursive bool) ([]string, error) {
	if len(extensions) == 0 {
		panic("extensions must not be empty")
	}

	var files []string
	if !recursive {
		entries, err := os.ReadDir(rootPath)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && hasExtension(e.Name(), extensions) {
				files = append(files, e.Name())
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return skipUnreadable(ctx, rootPath, path, d, err)
		}
		if d.IsDir() || !hasExtension(d.Name(), extensions) {
			return nil
		}
		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// skipUnreadable decides how a walk continues after err at path. Permission
// errors below rootPath are logged and skipped; anything else ends the walk.
func skipUnreadable(ctx context.Context, rootPath, path string, d fs.DirEntry, err error) error {
	if path == rootPath || !errors.Is(err, fs.ErrPermission) {
		return err
	}
	ctxlog.FromContext(ctx).Warn("Skipping unreadable path.", "path", path, "error", err)
	if d != nil && d.IsDir() {
		return fs.SkipDir
	}
	return nil
}

func hasExtension(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}
