// Package procmemo memoizes per-source processed filesystems for the
// lifetime of one pipeline run.
//
// When two branches of the repository tree reference the same (url, ref)
// pair, its processed VFS is computed once and shared. The table is
// sharded: each shard carries its own read-write mutex, and GetOrCompute
// runs the compute closure outside any lock, so unrelated keys never
// serialize behind one another. Per key the result is linearizable — a
// lost compute race returns the winner's value.
package procmemo
