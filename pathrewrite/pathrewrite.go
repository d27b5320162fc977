package pathrewrite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/strataforge/strata/strataerrors"
)

// Rule is a compiled rename mapping: an anchored pattern plus a parsed
// substitution template.
type Rule struct {
	pattern  *regexp.Regexp
	template []templatePart
	raw      string
}

// templatePart is one piece of a parsed template: either a literal run or a
// reference to a capture group.
type templatePart struct {
	literal string
	group   int // 0 means literal
}

// Compile compiles pattern as an anchored regular expression and parses
// template's %[N]s placeholders. The pattern is anchored on both ends, so
// "src/(.*)" only matches inputs that begin with "src/".
func Compile(pattern, template string) (*Rule, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, &strataerrors.ParseError{
			Path:    pattern,
			Message: "invalid rename pattern",
			Cause:   err,
		}
	}

	parts, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		if p.group > re.NumSubexp() {
			return nil, &strataerrors.ParseError{
				Path: template,
				Message: fmt.Sprintf("template refers to capture group %d but pattern defines only %d",
					p.group, re.NumSubexp()),
			}
		}
	}

	return &Rule{pattern: re, template: parts, raw: template}, nil
}

// Apply attempts to match input against the rule's pattern. On a match it
// returns the substituted target path and true; otherwise ("", false).
func (r *Rule) Apply(input string) (string, bool) {
	m := r.pattern.FindStringSubmatch(input)
	if m == nil {
		return "", false
	}
	var out strings.Builder
	for _, p := range r.template {
		if p.group == 0 {
			out.WriteString(p.literal)
			continue
		}
		out.WriteString(m[p.group])
	}
	return out.String(), true
}

// String returns the rule's template text.
func (r *Rule) String() string {
	return r.raw
}

// parseTemplate splits template into literal runs and %[N]s group
// references. "%%" escapes a literal percent sign.
func parseTemplate(template string) ([]templatePart, error) {
	var parts []templatePart
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, templatePart{literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(template) {
		ch := template[i]
		if ch != '%' {
			lit.WriteByte(ch)
			i++
			continue
		}
		if i+1 < len(template) && template[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}
		if i+1 >= len(template) || template[i+1] != '[' {
			return nil, &strataerrors.ParseError{
				Path:    template,
				Message: "invalid rename template: expected %[N]s placeholder",
			}
		}
		end := strings.IndexByte(template[i+2:], ']')
		if end < 0 {
			return nil, &strataerrors.ParseError{
				Path:    template,
				Message: "invalid rename template: unterminated placeholder",
			}
		}
		numText := template[i+2 : i+2+end]
		rest := i + 2 + end + 1
		if rest >= len(template) || template[rest] != 's' {
			return nil, &strataerrors.ParseError{
				Path:    template,
				Message: "invalid rename template: placeholder must end with s",
			}
		}
		n, err := strconv.Atoi(numText)
		if err != nil || n < 1 {
			return nil, &strataerrors.ParseError{
				Path:    template,
				Message: "invalid rename template: capture group must be a positive integer",
			}
		}
		flush()
		parts = append(parts, templatePart{group: n})
		i = rest + 1
	}
	flush()
	return parts, nil
}
