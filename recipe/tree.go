package recipe

import (
	"github.com/strataforge/strata/strataerrors"
)

// LocalURL and LocalRef identify the synthetic root node of a repository
// tree: the node holding the recipe's own top-level operations, backed by
// no remote source.
const (
	LocalURL = "local"
	LocalRef = "HEAD"
)

// RepoNode is one node of the repository tree. The root is synthetic
// (LocalURL/LocalRef); every other node corresponds to a repo operation.
type RepoNode struct {
	// URL is the repository clone URL, or LocalURL for the root.
	URL string
	// Ref is the git reference, or LocalRef for the root.
	Ref string
	// Subpath optionally restricts the source to a subdirectory.
	Subpath string
	// Operations apply to this node's source during per-source processing.
	Operations []Operation
	// Children are the nested repo declarations found in this node's
	// operations, in declaration order.
	Children []*RepoNode
}

// Key returns the node's "url@ref" identifier, the form used for memo keys
// and merge ordering.
func (n *RepoNode) Key() string {
	return n.URL + "@" + n.Ref
}

// IsLocal reports whether the node is the synthetic root.
func (n *RepoNode) IsLocal() bool {
	return n.URL == LocalURL
}

// RepoTree is the rooted, ordered tree of repositories a recipe reaches.
type RepoTree struct {
	Root *RepoNode
}

// BuildTree walks the recipe and constructs its repository tree. The
// synthetic root holds the top-level operations; each repo operation
// (including those nested under with:) becomes a child node. BuildTree
// fails with a CycleError when a (url, ref) pair appears twice on any
// root-to-leaf path.
func BuildTree(r *Recipe) (*RepoTree, error) {
	root := &RepoNode{
		URL:        LocalURL,
		Ref:        LocalRef,
		Operations: r.Operations,
	}
	onPath := map[string]bool{root.Key(): true}
	chain := []string{root.Key()}
	if err := attachChildren(root, r.Operations, onPath, chain); err != nil {
		return nil, err
	}
	return &RepoTree{Root: root}, nil
}

func attachChildren(parent *RepoNode, ops []Operation, onPath map[string]bool, chain []string) error {
	for _, op := range ops {
		repo, ok := op.(*RepoOp)
		if !ok {
			continue
		}
		child := &RepoNode{
			URL:        repo.URL,
			Ref:        repo.Ref,
			Subpath:    repo.Subpath,
			Operations: repo.With,
		}
		key := child.Key()
		if onPath[key] {
			return &strataerrors.CycleError{
				Chain:    append(append([]string{}, chain...), key),
				Repeated: key,
			}
		}

		onPath[key] = true
		if err := attachChildren(child, repo.With, onPath, append(chain, key)); err != nil {
			return err
		}
		delete(onPath, key)

		parent.Children = append(parent.Children, child)
	}
	return nil
}

// Walk visits every node of the tree in depth-first pre-order, parents
// before children, children in declaration order.
func (t *RepoTree) Walk(visit func(node *RepoNode)) {
	var rec func(n *RepoNode)
	rec = func(n *RepoNode) {
		visit(n)
		for _, c := range n.Children {
			rec(c)
		}
	}
	rec(t.Root)
}

// Levels returns the tree's nodes grouped by depth, root first. Stage 1
// uses this grouping to fetch all sources at one depth before descending,
// optionally in parallel within a level.
func (t *RepoTree) Levels() [][]*RepoNode {
	var levels [][]*RepoNode
	current := []*RepoNode{t.Root}
	for len(current) > 0 {
		levels = append(levels, current)
		var next []*RepoNode
		for _, n := range current {
			next = append(next, n.Children...)
		}
		current = next
	}
	return levels
}
