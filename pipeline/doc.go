// Package pipeline runs the six composition stages that turn a recipe
// into bytes on disk.
//
// Stage 1 builds the repository tree and clones every reachable source
// into the on-disk cache, fetching nodes of one tree depth in parallel.
// Stage 2 processes each source through its operations into an
// intermediate VFS, memoized per (url, ref). Stage 3 derives the
// deterministic merge order: depth-first post-order, children before
// parents, the synthetic root last. Stage 4 merges the intermediates in
// that order into the composite VFS. Stage 5 overlays the working
// directory's own files and applies the recipe's top-level operations.
// Stage 6 — vfs.VFS.WriteTo, invoked by the caller on the result —
// materializes the final VFS onto the host filesystem.
//
// Given a fixed recipe and fixed sources the composite VFS is
// byte-identical across runs; stage 1 parallelism affects wall-clock time
// only. If any stage fails, later stages are skipped and the error
// propagates with its taxonomy kind intact.
package pipeline
