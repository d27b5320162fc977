package recipe

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/strataforge/strata/pathrewrite"
	"github.com/strataforge/strata/strataerrors"
)

// Warning is a non-fatal policy finding raised during validation.
type Warning struct {
	// OpIndex is the zero-based index of the operation in its list.
	OpIndex int
	// Message describes the finding.
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("operation %d: %s", w.OpIndex, w.Message)
}

// Validate runs the checks applicable at parse time: every include/exclude
// pattern compiles as a glob, every rename mapping compiles as a regex with
// a well-formed template, every structured-merge operation satisfies its
// per-format preconditions, and tools declarations are non-empty (a policy
// warning, not fatal). The first error stops validation; warnings
// accumulate across the whole recipe.
func (r *Recipe) Validate() ([]Warning, error) {
	return validateOps(r.Operations)
}

func validateOps(ops []Operation) ([]Warning, error) {
	var warnings []Warning
	for i, op := range ops {
		switch o := op.(type) {
		case *RepoOp:
			nested, err := validateOps(o.With)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, nested...)
		case *IncludeOp:
			if err := validatePatterns(o.Patterns); err != nil {
				return nil, err
			}
		case *ExcludeOp:
			if err := validatePatterns(o.Patterns); err != nil {
				return nil, err
			}
		case *RenameOp:
			for _, m := range o.Mappings {
				if _, err := pathrewrite.Compile(m.From, m.To); err != nil {
					return nil, err
				}
			}
		case *YamlOp:
			if err := validateMergeFile(o.Source, o.Dest, "yaml"); err != nil {
				return nil, err
			}
		case *JsonOp:
			if err := validateMergeFile(o.Source, o.Dest, "json"); err != nil {
				return nil, err
			}
			if err := validatePosition(o.Position, "json"); err != nil {
				return nil, err
			}
		case *TomlOp:
			if err := validateMergeFile(o.Source, o.Dest, "toml"); err != nil {
				return nil, err
			}
		case *IniOp:
			if err := validateMergeFile(o.Source, o.Dest, "ini"); err != nil {
				return nil, err
			}
			if o.AllowDuplicates && !o.Append {
				return nil, &strataerrors.ParseError{
					Message: "ini operation: allow_duplicates requires append",
				}
			}
		case *MarkdownOp:
			if err := validateMergeFile(o.Source, o.Dest, "markdown"); err != nil {
				return nil, err
			}
			if o.Section == "" {
				return nil, &strataerrors.ParseError{
					Message: "markdown operation requires a section",
				}
			}
			if o.Level < 0 || o.Level > 6 {
				return nil, &strataerrors.ParseError{
					Message: fmt.Sprintf("markdown operation: level must be 1-6, got %d", o.Level),
				}
			}
			if err := validatePosition(o.Position, "markdown"); err != nil {
				return nil, err
			}
		case *ToolsOp:
			if len(o.Tools) == 0 {
				warnings = append(warnings, Warning{
					OpIndex: i,
					Message: "tools operation declares no tools",
				})
			}
		}
	}
	return warnings, nil
}

func validatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return &strataerrors.ParseError{
				Path:    pat,
				Message: "invalid glob pattern",
			}
		}
	}
	return nil
}

func validateMergeFile(source, dest, kind string) error {
	if source == "" {
		return &strataerrors.ParseError{
			Message: kind + " operation requires a source",
		}
	}
	if dest == "" {
		return &strataerrors.ParseError{
			Message: kind + " operation requires a dest",
		}
	}
	return nil
}

func validatePosition(position, kind string) error {
	switch position {
	case "", "start", "end":
		return nil
	}
	return &strataerrors.ParseError{
		Message: fmt.Sprintf("%s operation: position must be \"start\" or \"end\", got %q", kind, position),
	}
}
