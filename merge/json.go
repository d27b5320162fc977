package merge

import (
	"bytes"
	"encoding/json"

	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/vfs"
)

var jsonCodec = codec{
	name: "json",
	decode: func(data []byte) (any, error) {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	},
	encode: func(doc any) ([]byte, error) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
}

// ApplyJSON merges the JSON document at op.Source into the one at op.Dest,
// at the location op.Path addresses. op.Position selects which end of the
// destination array appended items land on. Output uses two-space indent.
func ApplyJSON(fsys *vfs.VFS, op *recipe.JsonOp) error {
	return applyStructured(fsys, op.Source, op.Dest, op.Path,
		modeOf(op.MergeFileOp), positionOf(op.Position), jsonCodec)
}
