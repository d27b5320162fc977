package reposcache

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// Entry identifies one cache directory, decoded from its name.
type Entry struct {
	// Hash is the hex-encoded URL hash, 1-16 hex digits.
	Hash string
	// Ref is the sanitized git reference.
	Ref string
	// Subpath is the sanitized source subpath, empty when the entry
	// covers the whole repository.
	Subpath string
}

// pathMarker separates the ref from the subpath inside an entry name.
const pathMarker = "-path-"

// EntryName derives the cache directory name for a (url, ref, subpath)
// tuple: "<hash16>-<ref>" or "<hash16>-<ref>-path-<subpath>". The hash is
// stable across runs and processes; the ref keeps the name
// human-parseable, with "/" mapped to "-"; the subpath additionally maps
// "." to "-".
func EntryName(url, ref, subpath string) string {
	hash := fmt.Sprintf("%016x", xxh3.HashString(url))
	name := hash + "-" + sanitizeRef(ref)
	if subpath != "" {
		name += pathMarker + sanitizeSubpath(subpath)
	}
	return name
}

func sanitizeRef(ref string) string {
	return strings.ReplaceAll(ref, "/", "-")
}

func sanitizeSubpath(subpath string) string {
	s := strings.ReplaceAll(subpath, "/", "-")
	return strings.ReplaceAll(s, ".", "-")
}

// ParseEntryName decodes a cache directory name produced by EntryName.
// Parsing a formatted name recovers the hash, sanitized ref, and
// sanitized subpath, except when the sanitized ref itself contains
// "-path-": the name is split at the first "-path-", so such a ref is
// returned truncated and its remainder joins the subpath. Names that do
// not fit the format return false.
func ParseEntryName(name string) (Entry, bool) {
	base := name
	var subpath string
	if idx := strings.Index(name, pathMarker); idx >= 0 {
		base = name[:idx]
		subpath = name[idx+len(pathMarker):]
		if subpath == "" {
			return Entry{}, false
		}
	}

	dash := strings.IndexByte(base, '-')
	if dash <= 0 {
		return Entry{}, false
	}
	hash, ref := base[:dash], base[dash+1:]
	if len(hash) > 16 || !isHex(hash) {
		return Entry{}, false
	}
	if ref == "" {
		return Entry{}, false
	}
	return Entry{Hash: hash, Ref: ref, Subpath: subpath}, true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
