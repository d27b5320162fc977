package vfs

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/strataforge/strata/strataerrors"
)

// LoadOptions customizes [LoadDir]'s walk. Both predicates receive the
// entry's path relative to root, using forward slashes.
type LoadOptions struct {
	// SkipDir, when non-nil and returning true, prunes the named directory
	// (and everything beneath it) from the walk.
	SkipDir func(relPath string) bool
	// SkipFile, when non-nil and returning true, excludes the named file
	// from the resulting VFS.
	SkipFile func(relPath string) bool
}

// LoadDir walks root and returns a VFS populated with every regular file
// found, keyed by its slash-separated path relative to root. Symlinks are
// not followed: a symlink is skipped whatever it points to. Both the
// repository cache loader and the working-directory reader build their
// filesystems through this walk.
func LoadDir(root string, opts LoadOptions) (*VFS, error) {
	result := New()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &strataerrors.IOError{Op: "walk", Path: path, Cause: err}
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return &strataerrors.IOError{Op: "walk", Path: path, Cause: err}
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if opts.SkipDir != nil && opts.SkipDir(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if opts.SkipFile != nil && opts.SkipFile(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return &strataerrors.IOError{Op: "stat", Path: path, Cause: err}
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return &strataerrors.IOError{Op: "read", Path: path, Cause: err}
		}

		result.Add(rel, File{
			Content: content,
			Mode:    info.Mode().Perm(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SkipGitAndDotfiles is the [LoadOptions.SkipDir] predicate used by the
// repository cache loader: it prunes ".git" and any dot-prefixed
// directory anywhere in the tree.
func SkipGitAndDotfiles(rel string) bool {
	base := filepath.Base(rel)
	return base == ".git" || (len(base) > 0 && base[0] == '.')
}

// SkipGitAndRootDotfiles is the [LoadOptions.SkipDir] predicate used by
// the working-directory reader: it prunes ".git" anywhere, but only
// prunes dot-prefixed directories when they sit at the walk's root
// level.
func SkipGitAndRootDotfiles(rel string) bool {
	base := filepath.Base(rel)
	if base == ".git" {
		return true
	}
	isRootLevel := !containsSlash(rel)
	return isRootLevel && len(base) > 0 && base[0] == '.'
}

func containsSlash(s string) bool {
	for _, r := range s {
		if r == '/' {
			return true
		}
	}
	return false
}
