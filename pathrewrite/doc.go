// Package pathrewrite implements the regex-based path rename engine used
// by rename operations.
//
// A rename mapping pairs an anchored regular expression with a substitution
// template. Templates use %[N]s placeholders referring to 1-indexed capture
// groups:
//
//	rule, err := pathrewrite.Compile("^src/(.*)", "lib/%[1]s")
//	out, ok := rule.Apply("src/a.go") // "lib/a.go", true
//
// Apply returns false when the input does not match; Compile fails on an
// invalid pattern or a template referring to a capture group the pattern
// does not define.
package pathrewrite
