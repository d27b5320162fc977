// Package vfs implements the in-memory virtual filesystem that is the
// currency of every stage of the composition pipeline.
//
// A VFS is an unordered mapping from relative path to [File]. Paths are
// always forward-slash-separated and never contain ".." or a leading "/".
// File equality is defined on (Content, Mode) only; ModTime is
// informational.
//
// The zero value is not usable; construct a VFS with [New]. [LoadDir]
// populates a VFS from a host directory, and [VFS.WriteTo] is its inverse,
// materializing a VFS back onto the host filesystem during pipeline stage
// six.
package vfs
