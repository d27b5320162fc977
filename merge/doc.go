// Package merge implements the structured-merge engines: YAML, JSON, TOML,
// INI, and Markdown.
//
// Every engine shares the same surface: a source and destination path
// inside a VFS, an optional path expression addressing the merge target
// inside the destination document, and array-merge mode flags. The source
// document must exist; the destination is created when absent.
//
// Objects merge key by key, recursing into nested objects; arrays combine
// according to the operation's array mode (replace, append, or
// append-unique); scalars are overwritten by the source. INI and Markdown
// follow their own section-oriented contracts described on ApplyINI and
// ApplyMarkdown.
package merge
