package pipeline

import (
	"github.com/strataforge/strata/pathrewrite"
	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/vfs"
)

// applyInclude builds a fresh VFS holding only the entries matching at
// least one pattern and returns it; the original is left untouched.
func applyInclude(fsys *vfs.VFS, op *recipe.IncludeOp) (*vfs.VFS, error) {
	filtered := vfs.New()
	for _, pat := range op.Patterns {
		matched, err := fsys.ListGlob(pat)
		if err != nil {
			return nil, err
		}
		for _, path := range matched {
			if f, ok := fsys.Get(path); ok {
				filtered.Add(path, f)
			}
		}
	}
	return filtered, nil
}

// applyExclude removes every entry matching at least one pattern.
func applyExclude(fsys *vfs.VFS, op *recipe.ExcludeOp) error {
	for _, pat := range op.Patterns {
		matched, err := fsys.ListGlob(pat)
		if err != nil {
			return err
		}
		for _, path := range matched {
			fsys.Remove(path)
		}
	}
	return nil
}

// applyRename renames each entry by the first mapping whose pattern
// matches it; entries matching no mapping keep their path.
func applyRename(fsys *vfs.VFS, op *recipe.RenameOp) error {
	rules := make([]*pathrewrite.Rule, len(op.Mappings))
	for i, m := range op.Mappings {
		rule, err := pathrewrite.Compile(m.From, m.To)
		if err != nil {
			return err
		}
		rules[i] = rule
	}

	for _, path := range fsys.List() {
		for _, rule := range rules {
			target, ok := rule.Apply(path)
			if !ok {
				continue
			}
			if err := fsys.Rename(path, target); err != nil {
				return err
			}
			break
		}
	}
	return nil
}
