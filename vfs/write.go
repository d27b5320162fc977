package vfs

import (
	"os"
	"path/filepath"

	"github.com/strataforge/strata/internal/fileutil"
	"github.com/strataforge/strata/internal/pathutil"
	"github.com/strataforge/strata/strataerrors"
)

// WriteTo materializes v onto the host filesystem under dir (stage 6).
// For each entry it creates any missing parent directories, writes the
// bytes (overwriting any existing file), then sets the permissions on
// POSIX systems. An existing file with different content is silently
// replaced. The first I/O failure aborts further writes, leaving the
// output directory in whatever intermediate state it reached; rerunning
// converges.
func (v *VFS) WriteTo(dir string) error {
	for p, f := range v.files {
		target := filepath.Join(dir, filepath.FromSlash(p))

		safe, err := pathutil.SanitizeOutputPath(target)
		if err != nil {
			return &strataerrors.IOError{Op: "write", Path: target, Cause: err}
		}

		if err := os.MkdirAll(filepath.Dir(safe), fileutil.TraversableDir); err != nil {
			return &strataerrors.IOError{Op: "mkdir", Path: filepath.Dir(safe), Cause: err}
		}

		if err := os.WriteFile(safe, f.Content, f.Mode.Perm()); err != nil {
			return &strataerrors.IOError{Op: "write", Path: safe, Cause: err}
		}

		if err := os.Chmod(safe, f.Mode.Perm()); err != nil {
			return &strataerrors.IOError{Op: "chmod", Path: safe, Cause: err}
		}
	}
	return nil
}
