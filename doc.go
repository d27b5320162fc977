// Package strata provides a configuration-inheritance engine that composes
// a virtual filesystem from a tree of local and remote (git) sources,
// applying per-source include/exclude/rename rules and structured merges
// before writing the result to disk.
//
// # Overview
//
// A strata "recipe" describes zero or more sources (local paths or git
// repositories, each at a specific ref) together with a list of operations
// to apply against the files each source contributes. Sources may
// themselves declare further sources, forming a tree; strata clones and
// processes the tree bottom-up and merges the results in root-last,
// depth-first order so that ancestors take final precedence over the
// sources they include.
//
// The library consists of these primary packages:
//
//   - vfs: the in-memory virtual filesystem strata composes into
//   - recipe: the tagged-union operation model and repository tree
//   - pathexpr: the dotted/bracketed path-expression language used by
//     structured merge operations
//   - merge: the YAML/JSON/TOML/INI/Markdown structured-merge engines
//   - reposcache: the on-disk, content-addressed git clone cache
//   - procmemo: the in-process per-source processed-VFS memo table
//   - pipeline: the six-stage orchestrator that ties everything together
//   - gitremote: the git transport abstraction
//   - strataerrors: the structured error taxonomy returned throughout
//
// # Quick Start
//
//	import (
//		"github.com/strataforge/strata/pipeline"
//		"github.com/strataforge/strata/recipe"
//	)
//
//	rec, err := recipe.Parse(recipeBytes)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := pipeline.Run(ctx, rec, pipeline.Options{
//		WorkDir:  ".",
//		CacheDir: cacheDir,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := result.VFS.WriteTo(outDir); err != nil {
//		log.Fatal(err)
//	}
//
// # Recipe Package
//
// The recipe package decodes a recipe document into a Recipe value and its
// Operations, and builds the Repository Tree used by pipeline stage one.
// It rejects recipes whose source declarations would create a repository
// cycle before any clone is attempted.
//
// # Merge Package
//
// The merge package implements structured deep-merge for five formats.
// The YAML, JSON and TOML engines accept a destination document, a source
// document, a parsed path expression locating the merge target, and an
// array merge mode (replace, append, or append-unique); object keys merge
// recursively and scalar leaves are replaced wholesale. The INI and
// Markdown engines merge by section instead.
//
// # Pipeline Package
//
// The pipeline package runs the six composition stages in order:
// discovery and cloning, per-source processing (memoized), topological
// ordering, composite assembly, local merging, and disk materialization.
// Validation findings and skipped top-level operations that the core does
// not implement are returned as structured warnings; any error (a cycle,
// a parse failure, a missing merge source or section, an unsupported
// operation inside a source, an I/O failure) stops the pipeline.
//
// # Caching
//
// reposcache persists cloned repository contents under a content-addressed
// directory name derived from the source URL and ref, so that repeated
// runs against the same recipe avoid re-cloning unchanged sources.
// procmemo caches the processed VFS for a given (url, ref) pair for the
// lifetime of a single pipeline run, so that a source included by two
// different ancestors is only walked and transformed once.
//
// # Error Handling
//
// All packages return errors from the strataerrors taxonomy: ParseError,
// CycleError, NotFoundError, IOError, LockError, and UnsupportedError.
// Callers should use errors.As to recover structured fields (such as the
// offending path or the cycle's repository chain) rather than parsing
// error strings.
//
// # Command-Line Interface
//
// In addition to the library packages, strata provides a minimal
// command-line driver:
//
//	# Apply a recipe and write the result to ./out
//	strata apply -recipe strata.yaml -out ./out
//
// Install the CLI:
//
//	go install github.com/strataforge/strata/cmd/strata@latest
//
// # License
//
// This library is released under the MIT License. See the LICENSE file in
// the repository for full details.
package strata
