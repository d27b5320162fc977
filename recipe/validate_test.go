package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataforge/strata/strataerrors"
)

func TestValidate_CleanRecipe(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&IncludeOp{Patterns: []string{"**/*", "*.go"}},
		&ExcludeOp{Patterns: []string{"target/**"}},
		&RenameOp{Mappings: []RenameMapping{{From: "^src/(.*)", To: "lib/%[1]s"}}},
		&YamlOp{MergeFileOp: MergeFileOp{Source: "a.yml", Dest: "b.yml"}},
	}}

	warnings, err := r.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_InvalidGlob(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&IncludeOp{Patterns: []string{"[unclosed"}},
	}}

	_, err := r.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, strataerrors.ErrParse))
}

func TestValidate_InvalidRenameRegex(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&RenameOp{Mappings: []RenameMapping{{From: "(unclosed", To: "x"}}},
	}}

	_, err := r.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, strataerrors.ErrParse))
}

func TestValidate_MergeOpRequiresSourceAndDest(t *testing.T) {
	cases := []Operation{
		&YamlOp{MergeFileOp: MergeFileOp{Dest: "b.yml"}},
		&JsonOp{MergeFileOp: MergeFileOp{Source: "a.json"}},
		&TomlOp{},
		&IniOp{Source: "a.ini"},
		&MarkdownOp{Source: "a.md", Section: "Usage"},
	}
	for _, op := range cases {
		r := &Recipe{Operations: []Operation{op}}
		_, err := r.Validate()
		require.Error(t, err, "operation kind %s", op.Kind())
		assert.True(t, errors.Is(err, strataerrors.ErrParse))
	}
}

func TestValidate_MarkdownRequiresSection(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&MarkdownOp{Source: "a.md", Dest: "README.md"},
	}}

	_, err := r.Validate()
	require.Error(t, err)
}

func TestValidate_MarkdownLevelRange(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&MarkdownOp{Source: "a.md", Dest: "README.md", Section: "Usage", Level: 7},
	}}

	_, err := r.Validate()
	require.Error(t, err)
}

func TestValidate_InvalidPosition(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&JsonOp{MergeFileOp: MergeFileOp{Source: "a.json", Dest: "b.json"}, Position: "middle"},
	}}

	_, err := r.Validate()
	require.Error(t, err)
}

func TestValidate_IniDuplicatesRequireAppend(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&IniOp{Source: "a.ini", Dest: "b.ini", AllowDuplicates: true},
	}}

	_, err := r.Validate()
	require.Error(t, err)
}

func TestValidate_EmptyToolsWarns(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&ToolsOp{},
	}}

	warnings, err := r.Validate()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "no tools")
}

func TestValidate_RecursesIntoWith(t *testing.T) {
	r := &Recipe{Operations: []Operation{
		&RepoOp{URL: "https://example.com/a.git", Ref: "v1", With: []Operation{
			&IncludeOp{Patterns: []string{"[bad"}},
		}},
	}}

	_, err := r.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, strataerrors.ErrParse))
}
