package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/strataforge/strata/gitremote"
	"github.com/strataforge/strata/merge"
	"github.com/strataforge/strata/procmemo"
	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/reposcache"
	"github.com/strataforge/strata/strataerrors"
	"github.com/strataforge/strata/vfs"
)

// DefaultRecipeFile is the working-directory recipe name skipped by the
// local file loader when Options.RecipeFile is empty.
const DefaultRecipeFile = ".strata.yaml"

// DefaultJobs bounds stage 1's per-depth-level fetch parallelism when
// Options.Jobs is zero.
const DefaultJobs = 4

// Options configures one pipeline run.
type Options struct {
	// WorkDir is the directory whose files overlay the composite VFS in
	// stage 5. Empty means the current directory.
	WorkDir string
	// CacheDir is the on-disk repository cache root.
	CacheDir string
	// RecipeFile is the recipe's path relative to WorkDir, excluded from
	// the stage-5 local load. Empty means DefaultRecipeFile.
	RecipeFile string
	// Transport clones and lists sources. Nil means the go-git transport.
	Transport gitremote.Transport
	// Jobs bounds how many sources of one tree depth are fetched
	// concurrently. Zero means DefaultJobs.
	Jobs int
}

// Warning is a non-fatal finding surfaced alongside the result.
type Warning struct {
	// Stage names the stage that raised the warning.
	Stage string
	// Message describes the finding.
	Message string
}

func (w Warning) String() string {
	return w.Stage + ": " + w.Message
}

// Result carries a completed run's final VFS, the stage-3 merge order it
// was assembled in, and any warnings.
type Result struct {
	// VFS is the final filesystem image; write it out with VFS.WriteTo.
	VFS *vfs.VFS
	// Order is the deterministic merge order stage 4 consumed.
	Order []procmemo.Key
	// Warnings collects the run's non-fatal findings.
	Warnings []Warning
}

// Run executes stages 1 through 5 and returns the final VFS. The caller
// materializes it (stage 6) with Result.VFS.WriteTo.
func Run(ctx context.Context, rec *recipe.Recipe, opts Options) (*Result, error) {
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.RecipeFile == "" {
		opts.RecipeFile = DefaultRecipeFile
	}
	if opts.Transport == nil {
		opts.Transport = gitremote.NewGoGit()
	}
	if opts.Jobs <= 0 {
		opts.Jobs = DefaultJobs
	}

	result := &Result{}

	validationWarnings, err := rec.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range validationWarnings {
		result.Warnings = append(result.Warnings, Warning{Stage: "validate", Message: w.String()})
	}

	cache := reposcache.New(opts.CacheDir, opts.Transport)

	tree, err := stage1(ctx, rec, cache, opts.Jobs)
	if err != nil {
		return nil, err
	}

	memo := procmemo.New()
	if err := stage2(ctx, tree, cache, memo); err != nil {
		return nil, err
	}

	order := stage3(tree)
	result.Order = order

	composite, err := stage4(order, memo)
	if err != nil {
		return nil, err
	}

	final, err := stage5(composite, rec, opts, result)
	if err != nil {
		return nil, err
	}
	result.VFS = final
	return result, nil
}

// stage1 builds the repository tree and clones every reachable source.
// Nodes of one depth level are fetched in parallel, bounded by jobs;
// levels complete in order, so a node is always fetched before stage 2
// touches it.
func stage1(ctx context.Context, rec *recipe.Recipe, cache *reposcache.Cache, jobs int) (*recipe.RepoTree, error) {
	tree, err := recipe.BuildTree(rec)
	if err != nil {
		return nil, err
	}

	for _, level := range tree.Levels() {
		if err := fetchLevel(ctx, level, cache, jobs); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func fetchLevel(ctx context.Context, level []*recipe.RepoNode, cache *reposcache.Cache, jobs int) error {
	work := make(chan *recipe.RepoNode)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for node := range work {
				if _, err := cache.Fetch(ctx, node.URL, node.Ref, node.Subpath); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	seen := make(map[[3]string]bool)
	for _, node := range level {
		key := [3]string{node.URL, node.Ref, node.Subpath}
		if node.IsLocal() || seen[key] {
			continue
		}
		seen[key] = true
		work <- node
	}
	close(work)
	wg.Wait()
	return firstErr
}

// stage2 processes every tree node into its intermediate VFS, children
// before parents, memoized per (url, ref).
func stage2(ctx context.Context, tree *recipe.RepoTree, cache *reposcache.Cache, memo *procmemo.Table) error {
	var process func(node *recipe.RepoNode) error
	process = func(node *recipe.RepoNode) error {
		for _, child := range node.Children {
			if err := process(child); err != nil {
				return err
			}
		}

		key := procmemo.Key{URL: node.URL, Ref: node.Ref}
		_, err := memo.GetOrCompute(key, func() (*vfs.VFS, error) {
			return processNode(ctx, node, cache)
		})
		return err
	}
	return process(tree.Root)
}

// processNode loads a node's source VFS and applies its operations in
// declaration order. The synthetic root starts from the empty VFS; its
// operations apply in stage 5 instead, against the fully merged result.
func processNode(ctx context.Context, node *recipe.RepoNode, cache *reposcache.Cache) (*vfs.VFS, error) {
	if node.IsLocal() {
		return vfs.New(), nil
	}

	fsys, err := cache.Fetch(ctx, node.URL, node.Ref, node.Subpath)
	if err != nil {
		return nil, err
	}

	for i, op := range node.Operations {
		fsys, err = applySourceOp(fsys, op)
		if err != nil {
			return nil, fmt.Errorf("source %s operation %d (%s): %w", node.Key(), i, op.Kind(), err)
		}
	}
	return fsys, nil
}

func applySourceOp(fsys *vfs.VFS, op recipe.Operation) (*vfs.VFS, error) {
	switch o := op.(type) {
	case *recipe.IncludeOp:
		return applyInclude(fsys, o)
	case *recipe.ExcludeOp:
		return fsys, applyExclude(fsys, o)
	case *recipe.RenameOp:
		return fsys, applyRename(fsys, o)
	case *recipe.RepoOp:
		// Nested sources were discovered and fetched in stage 1 and merge
		// ahead of this node in stage 4.
		return fsys, nil
	case *recipe.YamlOp, *recipe.JsonOp, *recipe.TomlOp, *recipe.IniOp, *recipe.MarkdownOp:
		return nil, &strataerrors.UnsupportedError{
			Operation: op.Kind(),
			Message:   "structured-merge operations are legal at the recipe's top level only",
		}
	case *recipe.TemplateOp, *recipe.TemplateVarsOp, *recipe.ToolsOp:
		return nil, &strataerrors.UnsupportedError{Operation: op.Kind()}
	default:
		return nil, &strataerrors.UnsupportedError{Operation: op.Kind()}
	}
}

// stage3 derives the merge order: depth-first post-order, children in
// declaration order, each (url, ref) emitted once, the root last. For any
// ancestor/descendant pair the descendant precedes the ancestor, so the
// later — more specific — node wins stage 4's last-write-wins merge.
func stage3(tree *recipe.RepoTree) []procmemo.Key {
	var order []procmemo.Key
	visited := make(map[procmemo.Key]bool)

	var walk func(node *recipe.RepoNode)
	walk = func(node *recipe.RepoNode) {
		key := procmemo.Key{URL: node.URL, Ref: node.Ref}
		if visited[key] {
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
		if visited[key] {
			return
		}
		visited[key] = true
		order = append(order, key)
	}
	walk(tree.Root)
	return order
}

// stage4 merges the intermediates in order into a fresh composite VFS.
func stage4(order []procmemo.Key, memo *procmemo.Table) (*vfs.VFS, error) {
	composite := vfs.New()
	for _, key := range order {
		intermediate, ok := memo.Get(key)
		if !ok {
			return nil, &strataerrors.NotFoundError{
				Kind:   "intermediate filesystem",
				Target: key.String(),
			}
		}
		composite.Merge(intermediate)
	}
	return composite, nil
}

// stage5 overlays the working directory's files onto the composite —
// local files take highest precedence — then applies the recipe's
// top-level operations in declaration order against the merged result.
func stage5(composite *vfs.VFS, rec *recipe.Recipe, opts Options, result *Result) (*vfs.VFS, error) {
	final := composite.Clone()

	local, err := loadWorkDir(opts.WorkDir, opts.RecipeFile)
	if err != nil {
		return nil, err
	}
	final.Merge(local)

	for i, op := range rec.Operations {
		applied, err := merge.Apply(final, op)
		if err != nil {
			return nil, fmt.Errorf("local operation %d (%s): %w", i, op.Kind(), err)
		}
		if applied {
			continue
		}

		switch o := op.(type) {
		case *recipe.IncludeOp:
			final, err = applyInclude(final, o)
		case *recipe.ExcludeOp:
			err = applyExclude(final, o)
		case *recipe.RenameOp:
			err = applyRename(final, o)
		case *recipe.RepoOp:
			// Consumed by stages 1-4.
		case *recipe.TemplateOp, *recipe.TemplateVarsOp, *recipe.ToolsOp:
			result.Warnings = append(result.Warnings, Warning{
				Stage:   "local-merge",
				Message: fmt.Sprintf("operation %d (%s) is not implemented and was skipped", i, op.Kind()),
			})
		}
		if err != nil {
			return nil, fmt.Errorf("local operation %d (%s): %w", i, op.Kind(), err)
		}
	}
	return final, nil
}

// loadWorkDir reads the working directory, skipping the recipe file
// itself, .git anywhere, and dot-prefixed entries at the root.
func loadWorkDir(dir, recipeFile string) (*vfs.VFS, error) {
	return vfs.LoadDir(dir, vfs.LoadOptions{
		SkipDir: vfs.SkipGitAndRootDotfiles,
		SkipFile: func(rel string) bool {
			if rel == recipeFile {
				return true
			}
			isRootLevel := !strings.Contains(rel, "/")
			return isRootLevel && strings.HasPrefix(rel, ".")
		},
	})
}
