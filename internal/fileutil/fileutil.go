package fileutil

import "os"

// OwnerReadWrite is the file permission mode for files private to the
// invoking user, such as cache bookkeeping entries (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the default permission mode for materialized output
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// TraversableDir is the permission mode for directories created while
// materializing output or publishing cache entries.
const TraversableDir os.FileMode = 0o755
