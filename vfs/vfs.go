package vfs

import (
	"io/fs"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/strataforge/strata/internal/fileutil"
	"github.com/strataforge/strata/strataerrors"
)

// DefaultMode is the permission bits a File carries when none is given
// explicitly.
const DefaultMode fs.FileMode = fileutil.ReadableByAll

// File is one entry of a VFS.
type File struct {
	// Content is the file's raw bytes. No encoding is assumed.
	Content []byte
	// Mode carries the POSIX permission bits; only the low 9 bits are
	// meaningful.
	Mode fs.FileMode
	// ModTime is informational and excluded from equality comparisons.
	ModTime time.Time
}

// Equal reports whether two Files have the same content and permissions.
// ModTime is deliberately excluded, matching the VFS's equality contract.
func (f File) Equal(other File) bool {
	return f.Mode.Perm() == other.Mode.Perm() && string(f.Content) == string(other.Content)
}

// VFS is an in-memory, path-keyed file map.
type VFS struct {
	files map[string]File
}

// New returns an empty VFS.
func New() *VFS {
	return &VFS{files: make(map[string]File)}
}

// Add inserts or overwrites the entry at path.
func (v *VFS) Add(path string, f File) {
	if f.Mode == 0 {
		f.Mode = DefaultMode
	}
	v.files[path] = f
}

// Remove deletes the entry at path, returning the removed File and true if
// it existed.
func (v *VFS) Remove(path string) (File, bool) {
	f, ok := v.files[path]
	if ok {
		delete(v.files, path)
	}
	return f, ok
}

// Get returns the File at path, if present.
func (v *VFS) Get(path string) (File, bool) {
	f, ok := v.files[path]
	return f, ok
}

// Exists reports whether path is present.
func (v *VFS) Exists(path string) bool {
	_, ok := v.files[path]
	return ok
}

// Len returns the number of entries.
func (v *VFS) Len() int {
	return len(v.files)
}

// List returns every path currently present, in unspecified order.
func (v *VFS) List() []string {
	paths := make([]string, 0, len(v.files))
	for p := range v.files {
		paths = append(paths, p)
	}
	return paths
}

// ListGlob returns every path whose string form matches the glob pattern
// pat. Patterns support "*", "**", "?", "[...]"/"[!...]", and backslash
// escapes, via doublestar's extended glob grammar.
func (v *VFS) ListGlob(pat string) ([]string, error) {
	var matched []string
	for p := range v.files {
		ok, err := doublestar.Match(pat, p)
		if err != nil {
			return nil, &strataerrors.ParseError{
				Path:    pat,
				Message: "invalid glob pattern",
				Cause:   err,
			}
		}
		if ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Rename moves the entry at from to to, failing if from is absent.
func (v *VFS) Rename(from, to string) error {
	f, ok := v.files[from]
	if !ok {
		return &strataerrors.NotFoundError{Kind: "vfs path", Target: from}
	}
	delete(v.files, from)
	v.files[to] = f
	return nil
}

// Copy duplicates the entry at from to to, failing if from is absent.
func (v *VFS) Copy(from, to string) error {
	f, ok := v.files[from]
	if !ok {
		return &strataerrors.NotFoundError{Kind: "vfs path", Target: from}
	}
	v.files[to] = f
	return nil
}

// Merge copies every entry from other into v, overwriting any existing
// entry at the same path (last-write-wins). Merge is associative but not
// commutative; the caller determines ordering.
func (v *VFS) Merge(other *VFS) {
	for p, f := range other.files {
		v.files[p] = f
	}
}

// Clone returns a deep copy of v. File.Content slices are copied so that
// mutating the clone's bytes never affects the original.
func (v *VFS) Clone() *VFS {
	clone := New()
	for p, f := range v.files {
		content := make([]byte, len(f.Content))
		copy(content, f.Content)
		clone.files[p] = File{Content: content, Mode: f.Mode, ModTime: f.ModTime}
	}
	return clone
}

// Stats summarizes the contents of a VFS.
type Stats struct {
	FileCount int
	TotalSize int64
}

// Stats computes file count and total byte size.
func (v *VFS) Stats() Stats {
	s := Stats{FileCount: len(v.files)}
	for _, f := range v.files {
		s.TotalSize += int64(len(f.Content))
	}
	return s
}
