package merge

import (
	"bytes"
	"errors"
	"reflect"

	"github.com/BurntSushi/toml"

	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/vfs"
)

var tomlCodec = codec{
	name: "toml",
	decode: func(data []byte) (any, error) {
		m := map[string]any{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return normalizeTOML(m), nil
	},
	encode: func(doc any) ([]byte, error) {
		m, ok := doc.(map[string]any)
		if !ok {
			return nil, errors.New("toml document root must be a table")
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
}

// ApplyTOML merges the TOML document at op.Source into the one at op.Dest,
// at the location op.Path addresses. The serializer does not carry
// comments through, so op.PreserveComments yields structurally-equivalent
// comment-free output.
func ApplyTOML(fsys *vfs.VFS, op *recipe.TomlOp) error {
	return applyStructured(fsys, op.Source, op.Dest, op.Path, modeOf(op.MergeFileOp), End, tomlCodec)
}

// normalizeTOML rewrites the decoder's output into the uniform
// map[string]any / []any shape the merge and path-expression code
// operates on. The TOML decoder produces typed slices for homogeneous
// arrays (e.g. []map[string]any for arrays of tables).
func normalizeTOML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeTOML(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeTOML(item)
		}
		return val
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalizeTOML(rv.Index(i).Interface())
		}
		return out
	}
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		for _, key := range rv.MapKeys() {
			out[key.String()] = normalizeTOML(rv.MapIndex(key).Interface())
		}
		return out
	}
	return v
}
