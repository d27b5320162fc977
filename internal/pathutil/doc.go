// Copyright 2025 Strataforge
// SPDX-License-Identifier: MIT

// Package pathutil provides path-building and path-safety utilities shared
// by the path-expression formatter and the disk-materialization stage.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// dotted/bracketed path-expression strings incrementally without allocating
// intermediate strings on every call. The path-expression formatter uses it
// to render parsed segments back into canonical spelling.
//
// # PathBuilder Usage
//
// Use [Get] to obtain a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("metadata")
//	path.Push(key)
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
//	// Only call String() when needed (e.g., reporting an error)
//	if hasError {
//	    return fmt.Errorf("error at %s", path.String())
//	}
//
// Array indices are supported via [PathBuilder.PushIndex]:
//
//	path.Push("items")
//	path.PushIndex(0)  // produces "items[0]"
//
// Keys containing separator characters go through
// [PathBuilder.PushQuoted], which renders them bracket-quoted:
//
//	path.Push("config")
//	path.PushQuoted("special.key")  // produces `config["special.key"]`
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for security.
// It rejects directory traversal ("..") and symlinks, used by the final VFS
// disk writer before any file is created:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err // path traversal or symlink detected
//	}
package pathutil
