package reposcache

import (
	"context"
	"os"
	"path/filepath"

	"github.com/strataforge/strata/gitremote"
	"github.com/strataforge/strata/internal/fileutil"
	"github.com/strataforge/strata/strataerrors"
	"github.com/strataforge/strata/vfs"
)

// Cache owns the on-disk clone directory and the transport used to
// populate it.
type Cache struct {
	root      string
	transport gitremote.Transport
}

// New returns a Cache rooted at root, cloning through transport.
func New(root string, transport gitremote.Transport) *Cache {
	return &Cache{root: root, transport: transport}
}

// Root returns the cache's root directory.
func (c *Cache) Root() string {
	return c.root
}

// Dir returns the on-disk directory for a (url, ref, subpath) tuple,
// whether or not it exists yet.
func (c *Cache) Dir(url, ref, subpath string) string {
	return filepath.Join(c.root, EntryName(url, ref, subpath))
}

// IsCached reports whether the entry for the tuple exists on disk. It
// never touches the network.
func (c *Cache) IsCached(url, ref, subpath string) bool {
	info, err := os.Stat(c.Dir(url, ref, subpath))
	return err == nil && info.IsDir()
}

// Fetch returns the repository contents for the tuple as a VFS, cloning
// on a cache miss. Fetch is idempotent: an existing entry is loaded
// without network I/O. A clone failure is fatal only when no cached copy
// exists; otherwise the stale copy is used and the failure absorbed.
//
// The entry is published atomically: the clone is staged into a
// dot-prefixed temporary directory and renamed into place, so a
// concurrent fetch of the same key either sees no entry or a complete
// one. Losing the publication race is not an error; the winner's entry
// is loaded instead.
func (c *Cache) Fetch(ctx context.Context, url, ref, subpath string) (*vfs.VFS, error) {
	dir := c.Dir(url, ref, subpath)

	if c.IsCached(url, ref, subpath) {
		return c.load(dir, subpath)
	}

	if err := c.clone(ctx, url, ref, dir); err != nil {
		// Another process may have published the entry while our clone
		// was failing; stale-is-acceptable covers that copy too.
		if c.IsCached(url, ref, subpath) {
			return c.load(dir, subpath)
		}
		return nil, err
	}
	return c.load(dir, subpath)
}

// ListTags forwards to the transport; no local clone is required.
func (c *Cache) ListTags(ctx context.Context, url string) ([]string, error) {
	return c.transport.ListTags(ctx, url)
}

func (c *Cache) clone(ctx context.Context, url, ref, dir string) error {
	if err := os.MkdirAll(c.root, fileutil.TraversableDir); err != nil {
		return &strataerrors.IOError{Op: "mkdir", Path: c.root, Cause: err}
	}

	staging, err := os.MkdirTemp(c.root, ".staging-")
	if err != nil {
		return &strataerrors.IOError{Op: "mkdir", Path: c.root, Cause: err}
	}
	defer os.RemoveAll(staging)

	if err := c.transport.Clone(ctx, url, ref, staging); err != nil {
		return err
	}

	if err := os.Rename(staging, dir); err != nil {
		// A concurrent fetcher won the publication race; its complete
		// entry supersedes our staging copy.
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			return nil
		}
		return &strataerrors.IOError{Op: "publish", Path: dir, Cause: err}
	}
	return nil
}

// load walks an entry directory into a fresh VFS, skipping .git and
// dot-prefixed entries. A subpath restricts the load to that
// subdirectory of the clone.
func (c *Cache) load(dir, subpath string) (*vfs.VFS, error) {
	root := dir
	if subpath != "" {
		root = filepath.Join(dir, filepath.FromSlash(subpath))
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return nil, &strataerrors.NotFoundError{
				Kind:    "cache subpath",
				Target:  subpath,
				Message: "not a directory inside the cached clone",
			}
		}
	}
	return vfs.LoadDir(root, vfs.LoadOptions{
		SkipDir:  vfs.SkipGitAndDotfiles,
		SkipFile: vfs.SkipGitAndDotfiles,
	})
}
