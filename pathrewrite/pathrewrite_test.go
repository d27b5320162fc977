package pathrewrite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataforge/strata/strataerrors"
)

func TestCompileApply_SingleCapture(t *testing.T) {
	rule, err := Compile("^src/(.*)", "lib/%[1]s")
	require.NoError(t, err)

	out, ok := rule.Apply("src/a.go")
	require.True(t, ok)
	assert.Equal(t, "lib/a.go", out)

	out, ok = rule.Apply("src/b/c.go")
	require.True(t, ok)
	assert.Equal(t, "lib/b/c.go", out)
}

func TestApply_NoMatch(t *testing.T) {
	rule, err := Compile("^src/(.*)", "lib/%[1]s")
	require.NoError(t, err)

	_, ok := rule.Apply("docs/readme.md")
	assert.False(t, ok)
}

func TestApply_AnchoredBothEnds(t *testing.T) {
	// Without explicit anchors the pattern must still only match the
	// whole input.
	rule, err := Compile("src/(.*)\\.go", "%[1]s.go")
	require.NoError(t, err)

	_, ok := rule.Apply("prefix/src/a.go")
	assert.False(t, ok)

	out, ok := rule.Apply("src/a.go")
	require.True(t, ok)
	assert.Equal(t, "a.go", out)
}

func TestApply_MultipleCaptures(t *testing.T) {
	rule, err := Compile("^([^/]+)/([^/]+)$", "%[2]s/%[1]s")
	require.NoError(t, err)

	out, ok := rule.Apply("a/b")
	require.True(t, ok)
	assert.Equal(t, "b/a", out)
}

func TestApply_EscapedPercent(t *testing.T) {
	rule, err := Compile("^(.*)$", "100%%-%[1]s")
	require.NoError(t, err)

	out, ok := rule.Apply("done")
	require.True(t, ok)
	assert.Equal(t, "100%-done", out)
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile("[unclosed", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, strataerrors.ErrParse))
}

func TestCompile_InvalidTemplate(t *testing.T) {
	cases := []string{"%s", "%[0]s", "%[1]", "%[x]s", "%[1"}
	for _, tmpl := range cases {
		_, err := Compile("^(.*)$", tmpl)
		require.Error(t, err, "template %q", tmpl)
		assert.True(t, errors.Is(err, strataerrors.ErrParse))
	}
}

func TestCompile_TemplateGroupOutOfRange(t *testing.T) {
	_, err := Compile("^(.*)$", "%[2]s")
	require.Error(t, err)
	assert.True(t, errors.Is(err, strataerrors.ErrParse))
}

func TestApply_LiteralOnlyTemplate(t *testing.T) {
	rule, err := Compile("^old\\.txt$", "new.txt")
	require.NoError(t, err)

	out, ok := rule.Apply("old.txt")
	require.True(t, ok)
	assert.Equal(t, "new.txt", out)
}
