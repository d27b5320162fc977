package merge

import (
	"go.yaml.in/yaml/v4"

	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/vfs"
)

var yamlCodec = codec{
	name: "yaml",
	decode: func(data []byte) (any, error) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	},
	encode: func(doc any) ([]byte, error) {
		return yaml.Marshal(doc)
	},
}

// ApplyYAML merges the YAML document at op.Source into the one at op.Dest,
// at the location op.Path addresses. Serialization uses block style
// throughout.
func ApplyYAML(fsys *vfs.VFS, op *recipe.YamlOp) error {
	return applyStructured(fsys, op.Source, op.Dest, op.Path, modeOf(op.MergeFileOp), End, yamlCodec)
}
