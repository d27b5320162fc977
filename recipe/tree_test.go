package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataforge/strata/strataerrors"
)

func TestBuildTree_SyntheticRoot(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&IncludeOp{Patterns: []string{"*"}},
	}}

	tree, err := BuildTree(r)
	require.NoError(t, err)
	assert.Equal(t, LocalURL, tree.Root.URL)
	assert.Equal(t, LocalRef, tree.Root.Ref)
	assert.True(t, tree.Root.IsLocal())
	assert.Equal(t, "local@HEAD", tree.Root.Key())
	assert.Len(t, tree.Root.Operations, 1)
	assert.Empty(t, tree.Root.Children)
}

func TestBuildTree_ChildrenInDeclarationOrder(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1"},
		&IncludeOp{Patterns: []string{"*"}},
		&RepoOp{URL: "https://example.com/b.git", Ref: "v2"},
	}}

	tree, err := BuildTree(r)
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 2)
	assert.Equal(t, "https://example.com/a.git@v1", tree.Root.Children[0].Key())
	assert.Equal(t, "https://example.com/b.git@v2", tree.Root.Children[1].Key())
}

func TestBuildTree_NestedRepos(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1", With: []Operation{
			&ExcludeOp{Patterns: []string{"docs/**"}},
			&RepoOp{URL: "https://example.com/b.git", Ref: "v2"},
		}},
	}}

	tree, err := BuildTree(r)
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 1)

	a := tree.Root.Children[0]
	assert.Len(t, a.Operations, 2)
	require.Len(t, a.Children, 1)
	assert.Equal(t, "https://example.com/b.git@v2", a.Children[0].Key())
}

func TestBuildTree_DirectCycle(t *testing.T) {
	// A repo whose with: block names the same (url, ref) again.
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1", With: []Operation{
			&RepoOp{URL: "https://example.com/a.git", Ref: "v1"},
		}},
	}}

	_, err := BuildTree(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, strataerrors.ErrCycle))

	var cycleErr *strataerrors.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "https://example.com/a.git@v1", cycleErr.Repeated)
}

func TestBuildTree_SamePairOnSiblingBranchesIsNotACycle(t *testing.T) {
	// The same (url, ref) on two sibling branches is legal; only repeats
	// along a single root-to-leaf path are cycles.
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1", With: []Operation{
			&RepoOp{URL: "https://example.com/shared.git", Ref: "v9"},
		}},
		&RepoOp{URL: "https://example.com/b.git", Ref: "v1", With: []Operation{
			&RepoOp{URL: "https://example.com/shared.git", Ref: "v9"},
		}},
	}}

	tree, err := BuildTree(r)
	require.NoError(t, err)
	assert.Len(t, tree.Root.Children, 2)
}

func TestBuildTree_DifferentRefIsNotACycle(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1", With: []Operation{
			&RepoOp{URL: "https://example.com/a.git", Ref: "v2"},
		}},
	}}

	_, err := BuildTree(r)
	assert.NoError(t, err)
}

func TestLevels_GroupsByDepth(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1", With: []Operation{
			&RepoOp{URL: "https://example.com/c.git", Ref: "v3"},
		}},
		&RepoOp{URL: "https://example.com/b.git", Ref: "v2"},
	}}

	tree, err := BuildTree(r)
	require.NoError(t, err)

	levels := tree.Levels()
	require.Len(t, levels, 3)
	assert.Equal(t, "local@HEAD", levels[0][0].Key())

	require.Len(t, levels[1], 2)
	assert.Equal(t, "https://example.com/a.git@v1", levels[1][0].Key())
	assert.Equal(t, "https://example.com/b.git@v2", levels[1][1].Key())

	require.Len(t, levels[2], 1)
	assert.Equal(t, "https://example.com/c.git@v3", levels[2][0].Key())
}

func TestWalk_PreOrder(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1", With: []Operation{
			&RepoOp{URL: "https://example.com/c.git", Ref: "v3"},
		}},
		&RepoOp{URL: "https://example.com/b.git", Ref: "v2"},
	}}

	tree, err := BuildTree(r)
	require.NoError(t, err)

	var visited []string
	tree.Walk(func(n *RepoNode) { visited = append(visited, n.Key()) })
	assert.Equal(t, []string{
		"local@HEAD",
		"https://example.com/a.git@v1",
		"https://example.com/c.git@v3",
		"https://example.com/b.git@v2",
	}, visited)
}
