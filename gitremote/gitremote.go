package gitremote

import (
	"context"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/strataforge/strata/strataerrors"
)

// Transport is the git collaborator the repository cache consumes.
type Transport interface {
	// Clone shallow-clones the repository at ref into targetDir.
	Clone(ctx context.Context, url, ref, targetDir string) error
	// ListTags lists the remote's tag names without cloning.
	ListTags(ctx context.Context, url string) ([]string, error)
}

// GoGit implements Transport with the pure-Go git client.
type GoGit struct {
	// Depth is the clone depth; 0 means the default shallow depth of 1.
	Depth int
}

// NewGoGit returns a GoGit transport with default settings.
func NewGoGit() *GoGit {
	return &GoGit{}
}

// Clone shallow-clones url at ref into targetDir. The ref may name a tag,
// a branch, or HEAD; candidates are tried in that order, since recipe
// refs are most often release tags.
func (g *GoGit) Clone(ctx context.Context, url, ref, targetDir string) error {
	depth := g.Depth
	if depth == 0 {
		depth = 1
	}

	var lastErr error
	for _, name := range refCandidates(ref) {
		_, err := git.PlainCloneContext(ctx, targetDir, false, &git.CloneOptions{
			URL:           url,
			ReferenceName: name,
			SingleBranch:  true,
			Depth:         depth,
			Tags:          git.NoTags,
		})
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return &strataerrors.IOError{Op: "clone", Path: url, Cause: lastErr}
}

// ListTags lists url's tags via an in-memory remote, without touching the
// local filesystem.
func (g *GoGit) ListTags(ctx context.Context, url string) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return nil, &strataerrors.IOError{Op: "list-tags", Path: url, Cause: err}
	}

	var tags []string
	for _, ref := range refs {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().Short())
		}
	}
	return tags, nil
}

// refCandidates expands a bare ref string into the reference names to try
// cloning, in order.
func refCandidates(ref string) []plumbing.ReferenceName {
	switch {
	case ref == "" || ref == "HEAD":
		return []plumbing.ReferenceName{plumbing.HEAD}
	case strings.HasPrefix(ref, "refs/"):
		return []plumbing.ReferenceName{plumbing.ReferenceName(ref)}
	default:
		return []plumbing.ReferenceName{
			plumbing.NewTagReferenceName(ref),
			plumbing.NewBranchReferenceName(ref),
		}
	}
}
