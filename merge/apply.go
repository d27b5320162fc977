package merge

import (
	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/vfs"
)

// Apply dispatches op to the engine for its format and reports whether op
// was a structured-merge operation at all. Non-merge operations return
// (false, nil) untouched, so callers can fold Apply into a larger
// operation dispatch.
func Apply(fsys *vfs.VFS, op recipe.Operation) (bool, error) {
	switch o := op.(type) {
	case *recipe.YamlOp:
		return true, ApplyYAML(fsys, o)
	case *recipe.JsonOp:
		return true, ApplyJSON(fsys, o)
	case *recipe.TomlOp:
		return true, ApplyTOML(fsys, o)
	case *recipe.IniOp:
		return true, ApplyINI(fsys, o)
	case *recipe.MarkdownOp:
		return true, ApplyMarkdown(fsys, o)
	}
	return false, nil
}
