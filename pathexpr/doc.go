// Package pathexpr implements the dotted and bracketed path-expression
// language used by strata's structured-merge engines to locate a value
// inside a decoded YAML/JSON/TOML document.
//
// Supported syntax:
//   - Dot notation: foo.bar.baz
//   - Bracket notation with quoted keys (for keys containing special
//     characters): foo["bar.baz"], foo['bar']
//   - Numeric array indices: items[0]
//   - Backslash-escaped characters, most commonly a literal dot: foo\.bar
//   - Empty string or "/" addresses the document root
//
// Not supported: wildcards, recursive descent, and filter expressions —
// the structured-merge operations never need to select more than one
// location at a time, so the grammar stays to exactly what the merge
// operations require.
package pathexpr
