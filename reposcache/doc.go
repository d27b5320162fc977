// Package reposcache persists cloned source repositories under a
// content-addressed directory layout shared across processes.
//
// Each cache entry lives in a directory named after its (url, ref,
// subpath) tuple: a hex hash of the URL, the sanitized ref, and — when a
// subpath restricts the source — a "-path-" suffix with the sanitized
// subpath. The name format round-trips through ParseEntryName for refs
// whose sanitized form does not contain "-path-", so a plain directory
// listing doubles as a human-readable cache inventory.
//
// Entries are published atomically: a clone is staged into a dot-prefixed
// temporary directory and renamed into place, so concurrent fetchers of
// the same key never observe a half-populated entry. When a clone fails
// but the entry already exists on disk, the cached copy is used and the
// network error is absorbed.
package reposcache
