package merge

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataforge/strata/recipe"
	"github.com/strataforge/strata/vfs"
)

func decodeTOML(t *testing.T, fsys *vfs.VFS, path string) map[string]any {
	t.Helper()
	f, ok := fsys.Get(path)
	require.True(t, ok, "missing %s", path)
	m := map[string]any{}
	require.NoError(t, toml.Unmarshal(f.Content, &m))
	return m
}

func TestApplyTOML_RootDeepMerge(t *testing.T) {
	fsys := yamlFS(t, map[string]string{
		"src.toml":  "[package]\nedition = \"2021\"\n",
		"dest.toml": "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n",
	})

	op := &recipe.TomlOp{MergeFileOp: recipe.MergeFileOp{Source: "src.toml", Dest: "dest.toml"}}
	require.NoError(t, ApplyTOML(fsys, op))

	doc := decodeTOML(t, fsys, "dest.toml")
	pkg := doc["package"].(map[string]any)
	assert.Equal(t, "demo", pkg["name"])
	assert.Equal(t, "0.1.0", pkg["version"])
	assert.Equal(t, "2021", pkg["edition"])
}

func TestApplyTOML_PathTarget(t *testing.T) {
	fsys := yamlFS(t, map[string]string{
		"src.toml":  "serde = \"1.0\"\n",
		"dest.toml": "[dependencies]\nclap = \"4.0\"\n",
	})

	op := &recipe.TomlOp{MergeFileOp: recipe.MergeFileOp{
		Source: "src.toml", Dest: "dest.toml", Path: "dependencies",
	}}
	require.NoError(t, ApplyTOML(fsys, op))

	doc := decodeTOML(t, fsys, "dest.toml")
	deps := doc["dependencies"].(map[string]any)
	assert.Equal(t, "4.0", deps["clap"])
	assert.Equal(t, "1.0", deps["serde"])
}

func TestApplyTOML_ArrayAppend(t *testing.T) {
	fsys := yamlFS(t, map[string]string{
		"src.toml":  "members = [\"tools\"]\n",
		"dest.toml": "[workspace]\nmembers = [\"core\", \"cli\"]\n",
	})

	op := &recipe.TomlOp{MergeFileOp: recipe.MergeFileOp{
		Source: "src.toml", Dest: "dest.toml", Path: "workspace", Append: true,
	}}
	require.NoError(t, ApplyTOML(fsys, op))

	doc := decodeTOML(t, fsys, "dest.toml")
	ws := doc["workspace"].(map[string]any)
	assert.Equal(t, []any{"core", "cli", "tools"}, ws["members"])
}

func TestApplyTOML_ArrayOfTablesNormalized(t *testing.T) {
	fsys := yamlFS(t, map[string]string{
		"src.toml":  "[[bin]]\nname = \"extra\"\n",
		"dest.toml": "[[bin]]\nname = \"main\"\n",
	})

	op := &recipe.TomlOp{MergeFileOp: recipe.MergeFileOp{
		Source: "src.toml", Dest: "dest.toml", Append: true,
	}}
	require.NoError(t, ApplyTOML(fsys, op))

	doc := decodeTOML(t, fsys, "dest.toml")
	bins := doc["bin"].([]map[string]any)
	require.Len(t, bins, 2)
	assert.Equal(t, "main", bins[0]["name"])
	assert.Equal(t, "extra", bins[1]["name"])
}

func TestApplyTOML_CreatesMissingDest(t *testing.T) {
	fsys := yamlFS(t, map[string]string{
		"src.toml": "name = \"demo\"\n",
	})

	op := &recipe.TomlOp{MergeFileOp: recipe.MergeFileOp{Source: "src.toml", Dest: "new.toml"}}
	require.NoError(t, ApplyTOML(fsys, op))

	doc := decodeTOML(t, fsys, "new.toml")
	assert.Equal(t, "demo", doc["name"])
}
